package memory

import (
	"context"
	"sync"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type preferenceRepository struct {
	mu       sync.RWMutex
	profiles map[types.UserID]*model.PreferenceProfile
}

func newPreferenceRepository() *preferenceRepository {
	return &preferenceRepository{
		profiles: make(map[types.UserID]*model.PreferenceProfile),
	}
}

func copyProfile(p *model.PreferenceProfile) *model.PreferenceProfile {
	copied := &model.PreferenceProfile{
		UserID:        p.UserID,
		LastLearnedAt: p.LastLearnedAt,
	}
	copied.Interests = append([]string{}, p.Interests...)
	copied.Values = append([]string{}, p.Values...)
	copied.Goals = append([]string{}, p.Goals...)
	copied.Dislikes = append([]string{}, p.Dislikes...)
	return copied
}

func (r *preferenceRepository) Upsert(ctx context.Context, profile *model.PreferenceProfile) (*model.PreferenceProfile, error) {
	if profile.UserID == "" {
		return nil, goerr.New("preference profile user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Full overwrite: whatever was stored before is discarded entirely.
	stored := copyProfile(profile)
	stored.LastLearnedAt = time.Now().UTC()

	r.profiles[stored.UserID] = stored
	return copyProfile(stored), nil
}

func (r *preferenceRepository) Get(ctx context.Context, userID types.UserID) (*model.PreferenceProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "preference profile not found", goerr.V("userID", userID))
	}

	return copyProfile(profile), nil
}
