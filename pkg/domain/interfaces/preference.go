package interfaces

import (
	"context"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
)

// PreferenceRepository defines the interface for PreferenceProfile
// persistence. A profile is keyed by user ID.
type PreferenceRepository interface {
	// Upsert creates or fully overwrites the profile for profile.UserID.
	// Overwrite means all four lists are replaced, never merged: the
	// stored profile always reflects the latest extraction only. The
	// repository sets LastLearnedAt.
	Upsert(ctx context.Context, profile *model.PreferenceProfile) (*model.PreferenceProfile, error)

	// Get retrieves the profile for a user. Returns ErrNotFound when no
	// extraction has succeeded yet.
	Get(ctx context.Context, userID types.UserID) (*model.PreferenceProfile, error)
}
