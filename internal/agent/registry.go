// Package agent implements the tool registry and the model tool-calling loop
package agent

import (
	"context"
	"fmt"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// Handler executes one tool invocation. Handlers validate their own required
// fields and return a typed error on failure; conversion to the string the
// model sees happens only in Dispatch.
type Handler func(ctx context.Context, input map[string]any) (string, error)

// Compile-time interface check
var _ interfaces.ToolDispatcher = (*Registry)(nil)

// Registry holds the tool definitions and their handlers. The set is fixed
// at process start: Register is not safe for use after dispatching begins.
type Registry struct {
	defs     []models.ToolDefinition
	handlers map[string]Handler
	logger   *common.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *common.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register adds a tool definition and its handler. Duplicate names are a
// programming error surfaced at startup.
func (r *Registry) Register(def models.ToolDefinition, handler Handler) error {
	if def.Name == "" {
		return fmt.Errorf("tool definition requires a name")
	}
	if handler == nil {
		return fmt.Errorf("tool %q requires a handler", def.Name)
	}
	if _, exists := r.handlers[def.Name]; exists {
		return fmt.Errorf("tool %q already registered", def.Name)
	}

	r.defs = append(r.defs, def)
	r.handlers[def.Name] = handler
	return nil
}

// MustRegister registers or panics. Used during process wiring where a
// duplicate name means the binary is miswired.
func (r *Registry) MustRegister(def models.ToolDefinition, handler Handler) {
	if err := r.Register(def, handler); err != nil {
		panic(err)
	}
}

// Definitions returns the registered tool definitions in registration order.
// The slice is a copy; the definitions themselves are immutable.
func (r *Registry) Definitions() []models.ToolDefinition {
	out := make([]models.ToolDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Dispatch executes a tool by exact name match. It never fails across the
// boundary: unknown names and handler errors come back as descriptive
// strings, which flow into the conversation as tool results so the model can
// recover conversationally.
func (r *Registry) Dispatch(ctx context.Context, name string, input map[string]any) string {
	handler, ok := r.handlers[name]
	if !ok {
		r.logger.Warn().Str("tool", name).Msg("Unknown tool requested")
		return fmt.Sprintf("Error: tool %q not found", name)
	}

	result, err := handler(ctx, input)
	if err != nil {
		r.logger.Warn().Err(err).Str("tool", name).Msg("Tool execution failed")
		return fmt.Sprintf("Error: %v", err)
	}

	r.logger.Debug().Str("tool", name).Int("result_len", len(result)).Msg("Tool executed")
	return result
}
