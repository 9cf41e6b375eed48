package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/repository/memory"
	"github.com/central-square/centralsquare/pkg/service/llm"
	"github.com/central-square/centralsquare/pkg/usecase"
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
	return &gollem.Response{Texts: []string{"Nice to meet you!"}}, nil
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

func putTestUser(t *testing.T, repo *memory.Memory, name string) types.UserID {
	t.Helper()
	userID := types.UserID("user-" + name)
	_, err := repo.User().Put(context.Background(), &model.User{
		ID:          userID,
		DisplayName: name,
	})
	gt.NoError(t, err).Required()
	return userID
}

func TestChatUseCase_HandleMessage(t *testing.T) {
	t.Run("first message creates host and greets by name", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		userID := putTestUser(t, repo, "Mika")

		reply, hostID, err := uc.Chat.HandleMessage(ctx, userID, "Hello!")
		gt.NoError(t, err).Required()
		gt.Value(t, hostID).NotEqual(types.HostID(""))
		gt.Bool(t, strings.Contains(reply, "Mika")).True()

		turns, err := repo.Conversation().ListTurns(ctx, hostID)
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(2).Required()
		gt.Value(t, turns[0].Speaker).Equal(types.SpeakerUser)
		gt.Value(t, turns[0].Text).Equal("Hello!")
		gt.Value(t, turns[1].Speaker).Equal(types.SpeakerAssistant)
		gt.Value(t, turns[1].Text).Equal(reply)
	})

	t.Run("reuses the same host across messages", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		userID := putTestUser(t, repo, "Mika")

		_, firstHostID, err := uc.Chat.HandleMessage(ctx, userID, "Hello!")
		gt.NoError(t, err).Required()
		_, secondHostID, err := uc.Chat.HandleMessage(ctx, userID, "I like ai")
		gt.NoError(t, err).Required()
		gt.Value(t, firstHostID).Equal(secondHostID)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		userID := putTestUser(t, repo, "Mika")

		_, _, err := uc.Chat.HandleMessage(context.Background(), userID, "   ")
		gt.Value(t, err).NotNil()
	})

	t.Run("unknown user maps to ErrUserNotFound", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, _, err := uc.Chat.HandleMessage(context.Background(), "user-ghost", "Hello!")
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})

	t.Run("learns preferences once the transcript is long enough", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		userID := putTestUser(t, repo, "Mika")

		// Two exchanges: 4 turns total, which triggers the learning pass
		_, _, err := uc.Chat.HandleMessage(ctx, userID, "Hello!")
		gt.NoError(t, err).Required()

		_, err = repo.Preference().Get(ctx, userID)
		gt.Value(t, err).NotNil() // too short, nothing learned yet

		_, _, err = uc.Chat.HandleMessage(ctx, userID, "I'm really into machine learning")
		gt.NoError(t, err).Required()

		profile, err := repo.Preference().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, profile.Interests).Has("ai")
	})

	t.Run("extraction without signal keeps the stored profile", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		userID := putTestUser(t, repo, "Mika")

		_, err := repo.Preference().Upsert(ctx, &model.PreferenceProfile{
			UserID:    userID,
			Interests: []string{"ai"},
		})
		gt.NoError(t, err).Required()

		_, _, err = uc.Chat.HandleMessage(ctx, userID, "Hello!")
		gt.NoError(t, err).Required()
		_, _, err = uc.Chat.HandleMessage(ctx, userID, "Nothing much going on today")
		gt.NoError(t, err).Required()

		profile, err := repo.Preference().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, profile.Interests).Equal([]string{"ai"})
	})

	t.Run("backend failure still yields a reply", func(t *testing.T) {
		repo := memory.New()
		failing := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("backend unavailable")
			},
		}
		uc := usecase.New(repo, usecase.WithLLMClient(llm.New(failing)))
		userID := putTestUser(t, repo, "Mika")

		reply, _, err := uc.Chat.HandleMessage(context.Background(), userID, "Hello!")
		gt.NoError(t, err).Required()
		gt.Value(t, reply).NotEqual("")
	})
}

func TestChatUseCase_History(t *testing.T) {
	t.Run("creates the host lazily on first access", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		userID := putTestUser(t, repo, "Mika")

		host, turns, err := uc.Chat.History(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, host.ID).NotEqual(types.HostID(""))
		gt.Array(t, turns).Length(0)
	})

	t.Run("returns turns in order after chatting", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		userID := putTestUser(t, repo, "Mika")

		_, _, err := uc.Chat.HandleMessage(ctx, userID, "Hello!")
		gt.NoError(t, err).Required()

		host, turns, err := uc.Chat.History(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(2)
		gt.Value(t, turns[0].HostID).Equal(host.ID)
	})

	t.Run("unknown user maps to ErrUserNotFound", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, _, err := uc.Chat.History(context.Background(), "user-ghost")
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})
}
