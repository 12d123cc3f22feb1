package tools

import (
	"context"

	"tradecouncil/pkg/errors"
)

// Tool represents a named callable capability exposed to the model as an
// available action. Input is the decoded JSON object from the action
// directive; output is serialized text fed back as an observation.
type Tool interface {
	// Name returns the unique tool identifier.
	Name() string
	// Description returns a short summary shown to the model.
	Description() string
	// Call performs the tool's action using the provided arguments.
	Call(ctx context.Context, input map[string]interface{}) (string, error)
}

// HandlerFunc is the function signature for tool handlers.
type HandlerFunc func(ctx context.Context, input map[string]interface{}) (string, error)

// FunctionTool is a simple Tool implementation backed by a handler function.
type FunctionTool struct {
	name        string
	description string
	handler     HandlerFunc
}

// New creates a new function-backed Tool.
func New(name, description string, handler HandlerFunc) Tool {
	return &FunctionTool{
		name:        name,
		description: description,
		handler:     handler,
	}
}

// Name returns the tool identifier.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the summary shown to the model.
func (t *FunctionTool) Description() string { return t.description }

// Call runs the underlying handler.
func (t *FunctionTool) Call(ctx context.Context, input map[string]interface{}) (string, error) {
	if t.handler == nil {
		return "", errors.New("tool handler is not defined")
	}
	return t.handler(ctx, input)
}
