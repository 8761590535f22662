package llm

import (
	"context"
	"sync"
)

// MockClient is a Client that returns canned replies for testing.
type MockClient struct {
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Calls        []MockCall
	mu           sync.Mutex
}

// MockCall records the arguments of one Complete call.
type MockCall struct {
	SystemPrompt string
	UserPrompt   string
}

// Complete implements the Client interface.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt})
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return `{"rating": "neutrally relevant", "reasoning": "mock"}`, nil
}
