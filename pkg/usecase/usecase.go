package usecase

import (
	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/service/aihost"
	"github.com/central-square/centralsquare/pkg/service/llm"
)

type UseCases struct {
	repo      interfaces.Repository
	llmClient *llm.Client
	Chat      *ChatUseCase
	Recommend *RecommendUseCase
}

type Option func(*UseCases)

// WithLLMClient injects the generation backend. Without it the use cases
// run on the deterministic fallback paths only.
func WithLLMClient(client *llm.Client) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.llmClient == nil {
		uc.llmClient = llm.New(nil)
	}

	responder := aihost.NewResponder(uc.llmClient)
	extractor := aihost.NewExtractor(uc.llmClient)

	uc.Chat = NewChatUseCase(repo, responder, extractor)
	uc.Recommend = NewRecommendUseCase(repo)

	return uc
}
