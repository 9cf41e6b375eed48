package llm

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/sony/gobreaker"
)

// ErrNotConfigured is returned when no LLM backend was configured. Callers
// are expected to fall back to deterministic behavior on this error.
var ErrNotConfigured = goerr.New("LLM client is not configured")

const (
	defaultTimeout        = 15 * time.Second
	defaultMaxFailures    = 3
	defaultBreakerTimeout = 30 * time.Second
)

// Client wraps an optional gollem backend with a call timeout and a circuit
// breaker so that a degraded model endpoint cannot stall chat handling.
type Client struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Client. llmClient may be nil, in which case every call
// returns ErrNotConfigured.
func New(llmClient gollem.LLMClient, opts ...Option) *Client {
	c := &Client{
		llmClient: llmClient,
		timeout:   defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "llm",
		Timeout: defaultBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= defaultMaxFailures
		},
	})

	return c
}

// Configured reports whether an LLM backend is available
func (c *Client) Configured() bool {
	return c != nil && c.llmClient != nil
}

// Complete sends a single prompt and returns the plain-text response
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.generate(ctx, userPrompt,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
}

// CompleteJSON sends a single prompt with a structured-output schema and
// returns the raw JSON text of the response.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, schema *gollem.Parameter) (string, error) {
	return c.generate(ctx, userPrompt,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
}

func (c *Client) generate(ctx context.Context, userPrompt string, sessionOpts ...gollem.SessionOption) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	result, err := c.breaker.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		session, err := c.llmClient.NewSession(callCtx, sessionOpts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create LLM session")
		}

		resp, err := session.GenerateContent(callCtx, gollem.Text(userPrompt))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to generate content from LLM")
		}
		if len(resp.Texts) == 0 {
			return nil, goerr.New("LLM returned an empty response")
		}

		return resp.Texts[0], nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
