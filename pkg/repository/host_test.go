package repository_test

import (
	"context"
	"testing"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
)

func newTestUserID() types.UserID {
	return types.UserID("user-" + uuid.New().String())
}

func runHostRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		created, err := repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(types.HostID(""))
		gt.Value(t, created.UserID).Equal(userID)
		gt.Value(t, created.DisplayName).Equal(model.DefaultHostName)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("one host per user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		_, err := repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.NoError(t, err).Required()

		_, err = repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.Value(t, err).NotNil()
	})

	t.Run("GetByUserID resolves the owning host", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		created, err := repo.Host().Create(ctx, model.NewAIHost(userID))
		gt.NoError(t, err).Required()

		found, err := repo.Host().GetByUserID(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, found.ID).Equal(created.ID)
	})

	t.Run("GetByUserID returns error when absent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Host().GetByUserID(ctx, newTestUserID())
		gt.Value(t, err).NotNil()
	})

	t.Run("List includes created hosts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Host().Create(ctx, model.NewAIHost(newTestUserID()))
		gt.NoError(t, err).Required()

		hosts, err := repo.Host().List(ctx)
		gt.NoError(t, err).Required()

		found := false
		for _, h := range hosts {
			if h.ID == created.ID {
				found = true
			}
		}
		gt.Bool(t, found).True()
	})
}

func TestHostRepository_Memory(t *testing.T) {
	runHostRepositoryTest(t, newMemoryRepo)
}

func TestHostRepository_Firestore(t *testing.T) {
	runHostRepositoryTest(t, newFirestoreRepo)
}

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then Get round-trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		stored, err := repo.User().Put(ctx, &model.User{
			ID:          userID,
			DisplayName: "Alex",
			Bio:         "Curious newcomer",
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.CreatedAt.IsZero()).False()

		found, err := repo.User().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, found.DisplayName).Equal("Alex")
		gt.Value(t, found.Bio).Equal("Curious newcomer")
	})

	t.Run("Put replaces but keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		first, err := repo.User().Put(ctx, &model.User{ID: userID, DisplayName: "Alex"})
		gt.NoError(t, err).Required()

		second, err := repo.User().Put(ctx, &model.User{ID: userID, DisplayName: "Alexandra"})
		gt.NoError(t, err).Required()

		gt.Value(t, second.DisplayName).Equal("Alexandra")
		gt.Bool(t, second.CreatedAt.Equal(first.CreatedAt)).True()
	})

	t.Run("Get returns error for unknown user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Get(ctx, newTestUserID())
		gt.Value(t, err).NotNil()
	})
}

func TestUserRepository_Memory(t *testing.T) {
	runUserRepositoryTest(t, newMemoryRepo)
}

func TestUserRepository_Firestore(t *testing.T) {
	runUserRepositoryTest(t, newFirestoreRepo)
}
