package ai

import (
	"context"
	"sync"
)

// Ensure StubClient implements ChatClient
var _ ChatClient = (*StubClient)(nil)

// StubClient replays canned completions in order. It backs the demo mode and
// tests; once the script is exhausted it keeps returning the last reply.
type StubClient struct {
	mu      sync.Mutex
	replies []string
	next    int

	// Calls records the message history of every request, in order.
	Calls [][]Message
}

// NewStubClient creates a stub that cycles through the given replies.
func NewStubClient(replies ...string) *StubClient {
	if len(replies) == 0 {
		replies = []string{"Final Answer: HOLD"}
	}
	return &StubClient{replies: replies}
}

// Chat returns the next scripted reply.
func (s *StubClient) Chat(ctx context.Context, messages []Message, params Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Message, len(messages))
	copy(snapshot, messages)
	s.Calls = append(s.Calls, snapshot)

	reply := s.replies[s.next]
	if s.next < len(s.replies)-1 {
		s.next++
	}
	return reply, nil
}

// CallCount returns how many completions were requested.
func (s *StubClient) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
