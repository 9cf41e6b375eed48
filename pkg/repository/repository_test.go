package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/repository/firestore"
	"github.com/central-square/centralsquare/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

// newMemoryRepo returns a fresh in-memory repository per test
func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

// newFirestoreRepo returns a repository backed by a real Firestore project.
// Tests using it are skipped unless TEST_FIRESTORE_PROJECT_ID is set.
func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	repo, err := firestore.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err).Required()

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close firestore repository: %v", err)
		}
	})

	return repo
}
