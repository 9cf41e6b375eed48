package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runConversationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("AppendTurn assigns ID, Seq and CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		hostID := types.NewHostID()

		turn, err := repo.Conversation().AppendTurn(ctx, hostID, &model.DialogueTurn{
			Speaker: types.SpeakerUser,
			Text:    "Hello!",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, turn.ID).NotEqual(types.TurnID(""))
		gt.Value(t, turn.HostID).Equal(hostID)
		gt.Value(t, turn.Seq).Equal(int64(1))
		gt.Bool(t, turn.CreatedAt.IsZero()).False()
	})

	t.Run("Seq increases strictly per host", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		hostID := types.NewHostID()

		for i := 1; i <= 5; i++ {
			speaker := types.SpeakerUser
			if i%2 == 0 {
				speaker = types.SpeakerAssistant
			}
			turn, err := repo.Conversation().AppendTurn(ctx, hostID, &model.DialogueTurn{
				Speaker: speaker,
				Text:    fmt.Sprintf("turn %d", i),
			})
			gt.NoError(t, err).Required()
			gt.Value(t, turn.Seq).Equal(int64(i))
		}

		otherHost := types.NewHostID()
		turn, err := repo.Conversation().AppendTurn(ctx, otherHost, &model.DialogueTurn{
			Speaker: types.SpeakerUser,
			Text:    "separate conversation",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, turn.Seq).Equal(int64(1))
	})

	t.Run("ListTurns returns chronological order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		hostID := types.NewHostID()

		texts := []string{"first", "second", "third"}
		for _, text := range texts {
			_, err := repo.Conversation().AppendTurn(ctx, hostID, &model.DialogueTurn{
				Speaker: types.SpeakerUser,
				Text:    text,
			})
			gt.NoError(t, err).Required()
		}

		turns, err := repo.Conversation().ListTurns(ctx, hostID)
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(3)

		for i, turn := range turns {
			gt.Value(t, turn.Text).Equal(texts[i])
			gt.Value(t, turn.Seq).Equal(int64(i + 1))
		}
	})

	t.Run("ListTurns for unknown host returns empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		turns, err := repo.Conversation().ListTurns(ctx, types.NewHostID())
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(0)
	})

	t.Run("AppendTurn rejects empty text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Conversation().AppendTurn(ctx, types.NewHostID(), &model.DialogueTurn{
			Speaker: types.SpeakerUser,
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("CountTurns matches appended turns", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		hostID := types.NewHostID()

		count, err := repo.Conversation().CountTurns(ctx, hostID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(0)

		for i := 0; i < 3; i++ {
			_, err := repo.Conversation().AppendTurn(ctx, hostID, &model.DialogueTurn{
				Speaker: types.SpeakerUser,
				Text:    "hello",
			})
			gt.NoError(t, err).Required()
		}

		count, err = repo.Conversation().CountTurns(ctx, hostID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(3)
	})
}

func TestConversationRepository_Memory(t *testing.T) {
	runConversationRepositoryTest(t, newMemoryRepo)
}

func TestConversationRepository_Firestore(t *testing.T) {
	runConversationRepositoryTest(t, newFirestoreRepo)
}
