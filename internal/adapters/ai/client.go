package ai

import "context"

// MessageRole defines the role of a message sender.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message is a single message in a conversation history.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Tool builds a tool observation message.
func Tool(content string) Message {
	return Message{Role: RoleTool, Content: content}
}

// Params are the generation parameters for a single completion request.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatClient is the boundary to the language model: given a message history
// and generation parameters it returns one text completion. Retries and rate
// limiting live behind this interface, not in the reasoning loop.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message, params Params) (string, error)
}
