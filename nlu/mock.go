package nlu

import (
	"context"

	"github.com/hupe1980/meetingmesh/core"
)

// MockProvider is a lightweight in-memory Provider useful for tests and
// examples. Unmatched inputs fall through to the keyword classifier.
type MockProvider struct {
	info      Info
	responses map[string]core.ExtractedIntent
	err       error
	calls     int
}

// NewMockProvider constructs a MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		info:      Info{Name: "mock", Provider: "mock"},
		responses: make(map[string]core.ExtractedIntent),
	}
}

// AddResponse registers a deterministic canned classification for an input.
func (m *MockProvider) AddResponse(input string, result core.ExtractedIntent) {
	m.responses[input] = result
}

// Fail makes every subsequent Classify call return err.
func (m *MockProvider) Fail(err error) { m.err = err }

// Calls reports how many times Classify was invoked.
func (m *MockProvider) Calls() int { return m.calls }

// Classify implements Provider.
func (m *MockProvider) Classify(_ context.Context, req Request) (core.ExtractedIntent, error) {
	m.calls++
	if m.err != nil {
		return core.ExtractedIntent{}, m.err
	}
	if result, ok := m.responses[req.Input]; ok {
		return result, nil
	}
	return Fallback(req.Input), nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }

var _ Provider = (*MockProvider)(nil)
