// Package models defines the domain types for Finagent
package models

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FinishReason signals how the model ended a response.
type FinishReason string

const (
	// FinishStop means the model produced a plain-text answer.
	FinishStop FinishReason = "stop"
	// FinishToolRequested means the model wants one or more tools executed
	// before it can answer.
	FinishToolRequested FinishReason = "tool-requested"
)

// ToolCall is a single tool invocation issued by the model.
type ToolCall struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input,omitempty"`
}

// ToolResult is the outcome of executing a ToolCall. ID pairs it with the
// call from the immediately preceding assistant turn. Name is carried because
// the Gemini API addresses function responses by name as well as ID.
type ToolResult struct {
	ID      string `json:"tool_use_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Turn is a single conversation turn. Exactly one of Text, Calls, or Results
// is populated: a plain-text turn, an assistant tool-request turn, or a
// user tool-result turn.
type Turn struct {
	Role    Role         `json:"role"`
	Text    string       `json:"text,omitempty"`
	Calls   []ToolCall   `json:"calls,omitempty"`
	Results []ToolResult `json:"results,omitempty"`
}

// IsText reports whether the turn carries plain text only.
func (t *Turn) IsText() bool {
	return len(t.Calls) == 0 && len(t.Results) == 0
}

// TextTurn builds a plain-text turn.
func TextTurn(role Role, text string) Turn {
	return Turn{Role: role, Text: text}
}

// ToolCallTurn builds an assistant turn carrying the model's tool calls
// verbatim.
func ToolCallTurn(calls []ToolCall) Turn {
	return Turn{Role: RoleAssistant, Calls: calls}
}

// ToolResultTurn builds the single user turn that groups all results for the
// preceding assistant turn's calls.
func ToolResultTurn(results []ToolResult) Turn {
	return Turn{Role: RoleUser, Results: results}
}

// ChatRequest is one model invocation: the fixed system prompt, the fixed
// tool definitions, and the full accumulated turn sequence.
type ChatRequest struct {
	System string
	Tools  []ToolDefinition
	Turns  []Turn
}

// ChatResponse is the model's reply: plain text on FinishStop, or the tool
// calls to execute on FinishToolRequested.
type ChatResponse struct {
	FinishReason FinishReason
	Text         string
	ToolCalls    []ToolCall
}
