package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/repository/memory"
	"github.com/central-square/centralsquare/pkg/service/aihost"
	"github.com/central-square/centralsquare/pkg/service/llm"
	"github.com/central-square/centralsquare/pkg/service/worker"
	"github.com/m-mizutani/gt"
)

func appendTurns(t *testing.T, repo *memory.Memory, hostID types.HostID, texts ...string) {
	t.Helper()
	for i, text := range texts {
		speaker := types.SpeakerUser
		if i%2 == 1 {
			speaker = types.SpeakerAssistant
		}
		_, err := repo.Conversation().AppendTurn(context.Background(), hostID, &model.DialogueTurn{
			HostID:  hostID,
			Speaker: speaker,
			Text:    text,
		})
		gt.NoError(t, err).Required()
	}
}

func newWorker(repo *memory.Memory) *worker.PreferenceRefreshWorker {
	extractor := aihost.NewExtractor(llm.New(nil))
	return worker.NewPreferenceRefreshWorker(repo, extractor, time.Minute)
}

func TestPreferenceRefreshWorker_RunOnce(t *testing.T) {
	t.Run("learns a profile for a grown transcript", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		userID := types.UserID("user-mika")
		host, err := repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.NoError(t, err).Required()
		appendTurns(t, repo, host.ID,
			"Hello!",
			"Hi! What are you interested in?",
			"I spend a lot of time on machine learning",
			"AI is a great topic!",
		)

		gt.NoError(t, newWorker(repo).RunOnce(ctx)).Required()

		profile, err := repo.Preference().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, profile.Interests).Has("ai")
	})

	t.Run("skips short transcripts", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		userID := types.UserID("user-mika")
		host, err := repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.NoError(t, err).Required()
		appendTurns(t, repo, host.ID, "I love machine learning", "Tell me more!")

		gt.NoError(t, newWorker(repo).RunOnce(ctx)).Required()

		_, err = repo.Preference().Get(ctx, userID)
		gt.Value(t, err).NotNil()
	})

	t.Run("skips hosts with no new turns since last learning", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		userID := types.UserID("user-mika")
		host, err := repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.NoError(t, err).Required()
		appendTurns(t, repo, host.ID,
			"Hello!",
			"Hi!",
			"I care about sustainability",
			"Climate is such an important area.",
		)

		// Profile learned after the last turn; the worker must not touch it
		_, err = repo.Preference().Upsert(ctx, &model.PreferenceProfile{
			UserID:    userID,
			Interests: []string{"handmade interest"},
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, newWorker(repo).RunOnce(ctx)).Required()

		profile, err := repo.Preference().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, profile.Interests).Equal([]string{"handmade interest"})
	})

	t.Run("empty repository is a no-op", func(t *testing.T) {
		repo := memory.New()
		gt.NoError(t, newWorker(repo).RunOnce(context.Background()))
	})
}

func TestPreferenceRefreshWorker_StartStop(t *testing.T) {
	repo := memory.New()
	w := newWorker(repo)

	w.Start(context.Background())
	w.Stop()
}
