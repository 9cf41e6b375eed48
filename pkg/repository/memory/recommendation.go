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

type recommendationRepository struct {
	mu      sync.Mutex
	entries map[types.RecommendationID]*model.Recommendation
}

func newRecommendationRepository() *recommendationRepository {
	return &recommendationRepository{
		entries: make(map[types.RecommendationID]*model.Recommendation),
	}
}

func copyRecommendation(rec *model.Recommendation) *model.Recommendation {
	copied := *rec
	if rec.ClickedAt != nil {
		t := *rec.ClickedAt
		copied.ClickedAt = &t
	}
	if rec.JoinedAt != nil {
		t := *rec.JoinedAt
		copied.JoinedAt = &t
	}
	return &copied
}

func (r *recommendationRepository) Create(ctx context.Context, rec *model.Recommendation) (*model.Recommendation, error) {
	if rec.UserID == "" {
		return nil, goerr.New("recommendation user ID is required")
	}
	if rec.ArcadeID == "" {
		return nil, goerr.New("recommendation arcade ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRecommendation(rec)
	if created.ID == "" {
		created.ID = types.NewRecommendationID()
	}
	created.CreatedAt = time.Now().UTC()

	r.entries[created.ID] = created
	return copyRecommendation(created), nil
}

func (r *recommendationRepository) Get(ctx context.Context, id types.RecommendationID) (*model.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "recommendation not found", goerr.V("id", id))
	}

	return copyRecommendation(rec), nil
}

func (r *recommendationRepository) MarkClicked(ctx context.Context, id types.RecommendationID, at time.Time) (*model.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "recommendation not found", goerr.V("id", id))
	}

	if err := rec.MarkClicked(at); err != nil {
		return nil, err
	}

	return copyRecommendation(rec), nil
}

func (r *recommendationRepository) MarkJoined(ctx context.Context, id types.RecommendationID, at time.Time) (*model.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "recommendation not found", goerr.V("id", id))
	}

	if err := rec.MarkJoined(at); err != nil {
		return nil, err
	}

	return copyRecommendation(rec), nil
}

func (r *recommendationRepository) ListByUserID(ctx context.Context, userID types.UserID) ([]*model.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*model.Recommendation
	for _, rec := range r.entries {
		if rec.UserID == userID {
			result = append(result, copyRecommendation(rec))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
