package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Library answers the function calls of a model.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a tool a model can call.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary returns a library dispatching calls to functions by name. It
// panics if two functions have the same name.
func NewLibrary[T Function](functions []T) Library {
	byName := make(map[string]Function, len(functions))
	for _, f := range functions {
		name := f.Declaration().Name
		if _, dup := byName[name]; dup {
			panic(fmt.Sprintf("agent: function %s declared twice", name))
		}
		byName[name] = f
	}
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		f, ok := byName[call.Name]
		if !ok {
			return errorResponse(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
		}
		log.Printf("Calling %s(%v)", call.Name, call.Args)
		return f.Call(ctx, call.ID, call.Args)
	}
}

// NewDeclaration returns the declarations of functions, for a model's tools.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Declaration())
	}
	return result
}
