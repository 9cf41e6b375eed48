package repository_test

import (
	"context"
	"testing"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func runPreferenceRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Upsert creates profile and sets LastLearnedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		stored, err := repo.Preference().Upsert(ctx, &model.PreferenceProfile{
			UserID:    userID,
			Interests: []string{"ai", "climate"},
			Values:    []string{"openness"},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.LastLearnedAt.IsZero()).False()

		found, err := repo.Preference().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, found.Interests).Equal([]string{"ai", "climate"})
		gt.Array(t, found.Values).Equal([]string{"openness"})
	})

	t.Run("Upsert fully overwrites, never merges", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		_, err := repo.Preference().Upsert(ctx, &model.PreferenceProfile{
			UserID:    userID,
			Interests: []string{"ai", "climate"},
			Values:    []string{"openness"},
			Goals:     []string{"find a community"},
		})
		gt.NoError(t, err).Required()

		_, err = repo.Preference().Upsert(ctx, &model.PreferenceProfile{
			UserID:    userID,
			Interests: []string{"music"},
		})
		gt.NoError(t, err).Required()

		found, err := repo.Preference().Get(ctx, userID)
		gt.NoError(t, err).Required()

		// The earlier interests, values, and goals must be gone.
		gt.Array(t, found.Interests).Equal([]string{"music"})
		gt.Array(t, found.Values).Length(0)
		gt.Array(t, found.Goals).Length(0)
	})

	t.Run("Get before any extraction returns error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Preference().Get(ctx, newTestUserID())
		gt.Value(t, err).NotNil()
	})

	t.Run("Upsert requires user ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Preference().Upsert(ctx, &model.PreferenceProfile{
			Interests: []string{"ai"},
		})
		gt.Value(t, err).NotNil()
	})
}

func TestPreferenceRepository_Memory(t *testing.T) {
	runPreferenceRepositoryTest(t, newMemoryRepo)
}

func TestPreferenceRepository_Firestore(t *testing.T) {
	runPreferenceRepositoryTest(t, newFirestoreRepo)
}
