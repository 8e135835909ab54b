package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// maxRounds bounds the function calls an expert can chain before answering.
const maxRounds = 8

// Expert is a chat with a model specialized by its system instruction and
// the functions of its Library.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// errorResponse returns a function response carrying err.
func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

// Start opens the expert's chat.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and answers its function calls until it
// replies with content.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if e.chat == nil {
		return nil, fmt.Errorf("expert %s is not started", e.Name)
	}
	for round := 0; round < maxRounds; round++ {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content
		calls := functionCalls(content)
		if len(calls) == 0 {
			return content, nil
		}
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		// answer every call of the turn at once, errors travel in the responses.
		parts = make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, call)})
		}
	}
	return nil, fmt.Errorf("expert %s made more than %d rounds of function calls", e.Name, maxRounds)
}

// functionCalls returns the function calls of content.
func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, p := range content.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert, with the figures it needs.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The expert's answer.",
		},
	}
}

// Call asks the question argument to the expert.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return errorResponse(id, e.Name, fmt.Errorf("argument 'question' must be a string, got %T", args["question"]))
	}

	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("expert %s failed to answer: %w", e.Name, err))
	}

	r := text(response)
	log.Printf("Expert %q: \n        %q\n        %q", e.Name, question, r)
	return &genai.FunctionResponse{
		ID:       id,
		Name:     e.Name,
		Response: map[string]any{"output": r},
	}
}
