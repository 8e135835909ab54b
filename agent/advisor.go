package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/invest"
	"github.com/etnz/invest/docs"
	"github.com/etnz/invest/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			The user is considering moving savings out of a long term investment into another one.
			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			Collect what the experts need: the deposits (year, optionally month, amount), the current value,
			the commissions and the expected yield of the new investment. Ask the user for what is missing,
			never invent figures.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			Be clear that the figures are projections, not advice.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewEconomist returns an expert on rates and inflation, grounded on Google
// Search.
func NewEconomist(model string) *Expert {
	return &Expert{
		Name: "Economist",
		Description: `This is an economist aware of current interest rates, inflation figures,
		typical fund yields and commissions, and tax rules on capital gains.
		Ask the Economist whenever you need recent or grounding information to choose assumptions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an economist. You can search and find about inflation, interest rates,
			fund performances and fees. You Leverage Google Search to ground your assertions in a solid truth.
			Always give the source and the date of the figures you quote.
				`}}},
		},
	}
}

// NewAdvisor returns the expert running the calculations with calc.
func NewAdvisor(model string, calc *invest.Calculator) *Expert {
	lib := []Function{analyzeFunc(calc), compareFunc(calc), topicFunc}

	return &Expert{
		Name: "Advisor",
		Description: `This is the Advisor. It computes, for the user's current investment, the tax due on
		the inflation adjusted gain, the money left after tax and the implied yield, and it compares keeping
		the investment with moving all or part of it to a new one, year after year.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a financial advisor running calculations with the Tools.
				Use Analyze to know what the current investment is worth after tax, and Compare to run what-if
				comparisons with a new investment. Run several comparisons when the user hesitates on an assumption.
				Explain the break-even year and the recommendation, and mention the warnings the tools report.
				Use Topic to learn how the figures are computed.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// currentProperties describe the current investment.
var currentProperties = map[string]*genai.Schema{
	"deposits": {
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A deposit as <year>[-<month>[..<month>]]=<amount>, e.g. 2015=10000, 2016-03=500 or 2017-01..12=12000 (12000 in total over the year).",
		},
		Description: "The deposits made into the current investment.",
	},
	"current_value":      {Type: genai.TypeNumber, Description: "The current value of the investment."},
	"current_commission": {Type: genai.TypeNumber, Description: "The annual commission of the current investment, in percent. 0 by default."},
	"as_of":              {Type: genai.TypeString, Description: "The period of the current value, as YYYY or YYYY-MM. The current month by default."},
	"manual_yield":       {Type: genai.TypeNumber, Description: "The expected annual yield of the current investment, in percent, to use instead of the estimated one."},
}

// compareProperties describe the new investment.
var compareProperties = map[string]*genai.Schema{
	"new_yield":           {Type: genai.TypeNumber, Description: "The expected annual yield of the new investment, in percent."},
	"new_commission":      {Type: genai.TypeNumber, Description: "The annual commission of the new investment, in percent. 0 by default."},
	"new_transaction_fee": {Type: genai.TypeNumber, Description: "The one-time fee to enter the new investment, in percent. 0 by default."},
	"years":               {Type: genai.TypeInteger, Description: "The number of years to project. 10 by default."},
	"partial_move":        {Type: genai.TypeNumber, Description: "The percentage of the money left after tax moved to the new investment. 100 by default."},
	"basis":               {Type: genai.TypeString, Enum: []string{"gross", "net"}, Description: "Compare gross values, or net values after the tax due on a sale. gross by default."},
}

func analyzeFunc(calc *invest.Calculator) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Analyze",
			Description: "Analyze computes the inflation adjusted deposits, the tax due if the current investment is sold, the money left after tax and the implied annual yield.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: currentProperties,
				Required:   []string{"deposits", "current_value"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the current investment.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			raw, err := rawInput(args)
			if err != nil {
				return errorResponse(id, "Analyze", err)
			}
			_, s, err := calc.Analyze(ctx, raw)
			if err != nil {
				return errorResponse(id, "Analyze", err)
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     "Analyze",
				Response: map[string]any{"output": renderer.SnapshotMarkdown(&s)},
			}
		},
	}
}

func compareFunc(calc *invest.Calculator) *Func {
	properties := make(map[string]*genai.Schema, len(currentProperties)+len(compareProperties))
	for k, v := range currentProperties {
		properties[k] = v
	}
	for k, v := range compareProperties {
		properties[k] = v
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Compare",
			Description: "Compare projects keeping the current investment against moving the money left after tax to a new investment, and returns the break-even year and a recommendation.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   []string{"deposits", "current_value", "new_yield"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the current investment and of the comparison.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			raw, err := rawInput(args)
			if err != nil {
				return errorResponse(id, "Compare", err)
			}
			raw.NewYield = arg(args, "new_yield", "")
			raw.NewCommission = arg(args, "new_commission", "0")
			raw.NewTransactionFee = arg(args, "new_transaction_fee", "0")
			raw.YearsToProject = arg(args, "years", "10")
			raw.PartialMove = arg(args, "partial_move", "100")
			raw.CompareBasis = arg(args, "basis", "")

			s, r, err := calc.Compare(ctx, raw)
			if err != nil {
				return errorResponse(id, "Compare", err)
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     "Compare",
				Response: map[string]any{"output": renderer.SnapshotMarkdown(&s) + "\n" + renderer.ComparisonMarkdown(&r)},
			}
		},
	}
}

var topicFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Topic",
		Description: `Topic returns the documentation of how the figures are computed.
		` + must(docs.GetTopic("readme")),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {Type: genai.TypeString, Description: `The topic name, or "*" for all of them.`},
			},
			Required: []string{"topic"},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown documentation."},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		doc, err := docs.GetTopic(arg(args, "topic", "readme"))
		if err != nil {
			return errorResponse(id, "Topic", err)
		}
		return &genai.FunctionResponse{ID: id, Name: "Topic", Response: map[string]any{"output": doc}}
	},
}

// rawInput reads the current investment arguments.
func rawInput(args map[string]any) (invest.RawInput, error) {
	raw := invest.RawInput{
		CurrentValue:      arg(args, "current_value", ""),
		CurrentCommission: arg(args, "current_commission", "0"),
		AsOf:              arg(args, "as_of", ""),
	}
	if v := arg(args, "manual_yield", ""); v != "" {
		raw.YieldSource = invest.ManualYield.String()
		raw.ManualYield = v
	}
	list, ok := args["deposits"].([]any)
	if !ok {
		return raw, fmt.Errorf("argument 'deposits' must be a list of deposits, got %T", args["deposits"])
	}
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return raw, fmt.Errorf("deposit %d must be a string like 2015=10000, got %T", i, v)
		}
		d, err := invest.ParseDeposit(s, "")
		if err != nil {
			return raw, err
		}
		raw.Deposits = append(raw.Deposits, d.Raw())
	}
	return raw, nil
}

// arg returns args[key] as text, or def if it is missing.
func arg(args map[string]any, key, def string) string {
	switch v := args[key].(type) {
	case nil:
		return def
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
