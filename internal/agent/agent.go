package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// DefaultMaxToolRounds bounds the tool-execution loop for one user turn.
const DefaultMaxToolRounds = 8

// ErrMaxToolRounds is returned when the model keeps requesting tools past
// the configured bound. The loop fails closed rather than spinning.
var ErrMaxToolRounds = errors.New("max tool rounds exceeded")

// Compile-time interface check
var _ interfaces.ChatService = (*Agent)(nil)

// Agent orchestrates one user turn: append the user text, invoke the model
// with the full history and the fixed tool definitions, execute any
// requested tools, and repeat until the model returns plain text.
//
// A mutex serializes turns: at most one loop is in flight per conversation,
// since concurrent appends to one ordered turn sequence would interleave
// incompatible call/result pairs.
//
// Tool side effects are not transactional with turn appends. A crash
// mid-loop can leave a tool's file write landed while the final assistant
// turn is missing; this window is accepted.
type Agent struct {
	llm           interfaces.LLMClient
	tools         interfaces.ToolDispatcher
	store         interfaces.ConversationStore
	system        string
	maxToolRounds int
	logger        *common.Logger

	mu sync.Mutex
}

// Option configures the agent
type Option func(*Agent)

// WithSystemPrompt sets the system prompt
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		if prompt != "" {
			a.system = prompt
		}
	}
}

// WithMaxToolRounds sets the tool-round bound
func WithMaxToolRounds(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxToolRounds = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New creates an agent over an LLM client, a tool dispatcher, and a
// conversation store.
func New(llm interfaces.LLMClient, tools interfaces.ToolDispatcher, store interfaces.ConversationStore, opts ...Option) *Agent {
	a := &Agent{
		llm:           llm,
		tools:         tools,
		store:         store,
		system:        SystemPrompt,
		maxToolRounds: DefaultMaxToolRounds,
		logger:        common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Chat runs the loop for one user message and returns the model's final
// plain-text answer. Model invocation failures and store write failures are
// fatal for the turn and propagate to the caller.
func (a *Agent) Chat(ctx context.Context, userText string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Append(ctx, models.TextTurn(models.RoleUser, userText)); err != nil {
		return "", fmt.Errorf("failed to record user turn: %w", err)
	}

	defs := a.tools.Definitions()

	for round := 0; ; round++ {
		turns, err := a.store.History(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to load history: %w", err)
		}

		resp, err := a.llm.Chat(ctx, &models.ChatRequest{
			System: a.system,
			Tools:  defs,
			Turns:  turns,
		})
		if err != nil {
			return "", err
		}

		if resp.FinishReason != models.FinishToolRequested {
			if err := a.store.Append(ctx, models.TextTurn(models.RoleAssistant, resp.Text)); err != nil {
				return "", fmt.Errorf("failed to record assistant turn: %w", err)
			}
			return resp.Text, nil
		}

		if round >= a.maxToolRounds {
			a.logger.Error().Int("rounds", round).Msg("Tool loop bound exceeded")
			return "", ErrMaxToolRounds
		}

		// Execute every call from this response, in the order the model
		// listed them, then feed all results back grouped in a single user
		// turn. The model API requires the grouping: results for one
		// assistant turn must arrive together in exactly one follow-up turn.
		results := make([]models.ToolResult, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			a.logger.Info().Str("tool", call.Name).Str("call_id", call.ID).Msg("Executing tool")
			content := a.tools.Dispatch(ctx, call.Name, call.Input)
			results = append(results, models.ToolResult{
				ID:      call.ID,
				Name:    call.Name,
				Content: content,
			})
		}

		if err := a.store.Append(ctx, models.ToolCallTurn(resp.ToolCalls)); err != nil {
			return "", fmt.Errorf("failed to record tool calls: %w", err)
		}
		if err := a.store.Append(ctx, models.ToolResultTurn(results)); err != nil {
			return "", fmt.Errorf("failed to record tool results: %w", err)
		}
	}
}

// Reset truncates the conversation.
func (a *Agent) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Reset(ctx)
}
