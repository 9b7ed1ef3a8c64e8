// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

const DefaultModel = "gemini-2.0-flash"

// Compile-time interface check
var _ interfaces.LLMClient = (*Client)(nil)

// Client implements the LLMClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Chat sends the full turn sequence plus tool declarations to the model and
// maps the response back onto the neutral ChatResponse contract.
func (c *Client) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	contents, err := toContents(req.Turns)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{
			FunctionDeclarations: toDeclarations(req.Tools),
		}}
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("turns", len(req.Turns)).
		Int("tools", len(req.Tools)).
		Msg("Invoking model")

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("model invocation failed: %w", err)
	}

	return fromResponse(result)
}

// toContents converts the neutral turn sequence to Gemini content. Assistant
// turns map to role "model"; tool-result turns stay role "user" with
// function-response parts, matching how the API pairs results to calls.
func toContents(turns []models.Turn) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for i, turn := range turns {
		role := genai.RoleUser
		if turn.Role == models.RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		switch {
		case len(turn.Calls) > 0:
			for _, call := range turn.Calls {
				parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
					ID:   call.ID,
					Name: call.Name,
					Args: call.Input,
				}})
			}
		case len(turn.Results) > 0:
			for _, res := range turn.Results {
				parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					ID:       res.ID,
					Name:     res.Name,
					Response: map[string]any{"result": res.Content},
				}})
			}
		default:
			parts = append(parts, &genai.Part{Text: turn.Text})
		}

		if len(parts) == 0 {
			return nil, fmt.Errorf("turn %d has no content", i)
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents, nil
}

// toDeclarations converts tool definitions to Gemini function declarations.
func toDeclarations(defs []models.ToolDefinition) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  toSchema(def.InputSchema),
		})
	}
	return decls
}

// toSchema converts the neutral schema fragment to a genai.Schema.
func toSchema(s *models.Schema) *genai.Schema {
	if s == nil {
		return &genai.Schema{Type: genai.TypeObject}
	}

	out := &genai.Schema{
		Type:        toSchemaType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}
	return out
}

func toSchemaType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

// fromResponse maps a generate-content response to the neutral contract.
// Any function-call part makes the response tool-requested; Gemini does not
// always assign call IDs, so missing ones are synthesized before the pairing
// invariant matters.
func fromResponse(result *genai.GenerateContentResponse) (*models.ChatResponse, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	resp := &models.ChatResponse{FinishReason: models.FinishStop}
	var text strings.Builder

	for _, part := range result.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			call := models.ToolCall{
				ID:    part.FunctionCall.ID,
				Name:  part.FunctionCall.Name,
				Input: part.FunctionCall.Args,
			}
			if call.ID == "" {
				call.ID = "call_" + uuid.New().String()[:8]
			}
			resp.ToolCalls = append(resp.ToolCalls, call)
			continue
		}
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if len(resp.ToolCalls) > 0 {
		resp.FinishReason = models.FinishToolRequested
	}
	resp.Text = text.String()

	if resp.FinishReason == models.FinishStop && resp.Text == "" {
		return nil, fmt.Errorf("no content generated")
	}
	return resp, nil
}
