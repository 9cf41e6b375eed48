package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type arcadeRepository struct {
	mu      sync.RWMutex
	arcades map[types.ArcadeID]*model.Arcade
}

func newArcadeRepository() *arcadeRepository {
	return &arcadeRepository{
		arcades: make(map[types.ArcadeID]*model.Arcade),
	}
}

func copyArcade(a *model.Arcade) *model.Arcade {
	copied := *a
	copied.Tags = append([]string{}, a.Tags...)
	return &copied
}

func (r *arcadeRepository) Put(ctx context.Context, arcade *model.Arcade) (*model.Arcade, error) {
	if err := arcade.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid arcade")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyArcade(arcade)
	if stored.ID == "" {
		stored.ID = types.NewArcadeID()
	}
	if existing, exists := r.arcades[stored.ID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.arcades[stored.ID] = stored
	return copyArcade(stored), nil
}

func (r *arcadeRepository) Get(ctx context.Context, id types.ArcadeID) (*model.Arcade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	arcade, exists := r.arcades[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "arcade not found", goerr.V("id", id))
	}

	return copyArcade(arcade), nil
}

func (r *arcadeRepository) List(ctx context.Context) ([]*model.Arcade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Arcade, 0, len(r.arcades))
	for _, a := range r.arcades {
		result = append(result, copyArcade(a))
	}
	sortArcades(result)

	return result, nil
}

func (r *arcadeRepository) ListOpen(ctx context.Context) ([]*model.Arcade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Arcade, 0, len(r.arcades))
	for _, a := range r.arcades {
		if a.IsOpen {
			result = append(result, copyArcade(a))
		}
	}
	sortArcades(result)

	return result, nil
}

// sortArcades orders by member count descending, then name, so that match
// candidates have a stable order across invocations.
func sortArcades(arcades []*model.Arcade) {
	sort.SliceStable(arcades, func(i, j int) bool {
		if arcades[i].MemberCount != arcades[j].MemberCount {
			return arcades[i].MemberCount > arcades[j].MemberCount
		}
		return arcades[i].Name < arcades[j].Name
	})
}
