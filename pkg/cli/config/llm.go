package config

import (
	"context"
	"log/slog"

	"github.com/central-square/centralsquare/pkg/service/llm"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// LLM holds CLI flags for the generation backend. An unconfigured backend
// is valid: the AI host then runs entirely on its deterministic fallbacks.
type LLM struct {
	provider      string
	geminiProject string
	geminiLoc     string
	openaiAPIKey  string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Generation backend provider (gemini, openai, or none)",
			Value:       "none",
			Sources:     cli.EnvVars("CENTRALSQUARE_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("CENTRALSQUARE_GEMINI_PROJECT"),
			Destination: &l.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("CENTRALSQUARE_GEMINI_LOCATION"),
			Destination: &l.geminiLoc,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("CENTRALSQUARE_OPENAI_API_KEY"),
			Destination: &l.openaiAPIKey,
		},
	}
}

// LogValue returns the structured log representation of the configuration.
// The OpenAI key is never included.
func (l *LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", l.provider),
		slog.String("gemini_project", l.geminiProject),
		slog.String("gemini_location", l.geminiLoc),
		slog.Bool("openai_key_set", l.openaiAPIKey != ""),
	)
}

// Configure creates the LLM client wrapper from the configured flags. With
// provider "none" (or unset) the returned client is unconfigured, which is
// not an error.
func (l *LLM) Configure(ctx context.Context) (*llm.Client, error) {
	var backend gollem.LLMClient

	switch l.provider {
	case "", "none":
		return llm.New(nil), nil

	case "gemini":
		if l.geminiProject == "" {
			return nil, goerr.New("gemini-project is required for the gemini provider")
		}
		client, err := gemini.New(ctx, l.geminiProject, l.geminiLoc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		backend = client

	case "openai":
		if l.openaiAPIKey == "" {
			return nil, goerr.New("openai-api-key is required for the openai provider")
		}
		client, err := openai.New(ctx, l.openaiAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		backend = client

	default:
		return nil, goerr.New("invalid LLM provider", goerr.V("provider", l.provider))
	}

	return llm.New(backend), nil
}
