package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/central-square/centralsquare/pkg/service/llm"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"hello from the model"}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func TestClient_NotConfigured(t *testing.T) {
	client := llm.New(nil)
	gt.Bool(t, client.Configured()).False()

	_, err := client.Complete(context.Background(), "system", "user")
	gt.Bool(t, errors.Is(err, llm.ErrNotConfigured)).True()
}

func TestClient_Complete(t *testing.T) {
	client := llm.New(&mockLLMClient{})
	gt.Bool(t, client.Configured()).True()

	text, err := client.Complete(context.Background(), "system", "user")
	gt.NoError(t, err).Required()
	gt.Value(t, text).Equal("hello from the model")
}

func TestClient_BreakerTripsAfterConsecutiveFailures(t *testing.T) {
	failing := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return nil, errors.New("backend unavailable")
		},
	}
	client := llm.New(failing)

	for i := 0; i < 3; i++ {
		_, err := client.Complete(context.Background(), "system", "user")
		gt.Value(t, err).NotNil()
	}

	// Circuit is now open: calls fail fast without reaching the backend
	called := false
	failing.newSessionFn = func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
		called = true
		return nil, errors.New("backend unavailable")
	}
	_, err := client.Complete(context.Background(), "system", "user")
	gt.Value(t, err).NotNil()
	gt.Bool(t, called).False()
}
