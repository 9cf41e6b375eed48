package interfaces

import (
	"context"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
)

// RecommendationRepository defines the interface for the recommendation
// ledger: which candidates were shown, clicked, and joined.
type RecommendationRepository interface {
	// Create records that a match result was shown to a user. The
	// repository assigns the ID (if empty) and CreatedAt.
	Create(ctx context.Context, rec *model.Recommendation) (*model.Recommendation, error)

	// Get retrieves a ledger entry by ID
	Get(ctx context.Context, id types.RecommendationID) (*model.Recommendation, error)

	// MarkClicked sets ClickedAt on the entry. Fails if already set or if
	// the monotonicity with JoinedAt would be violated.
	MarkClicked(ctx context.Context, id types.RecommendationID, at time.Time) (*model.Recommendation, error)

	// MarkJoined sets JoinedAt on the entry. A prior click is not required.
	MarkJoined(ctx context.Context, id types.RecommendationID, at time.Time) (*model.Recommendation, error)

	// ListByUserID retrieves all ledger entries for a user, newest first
	ListByUserID(ctx context.Context, userID types.UserID) ([]*model.Recommendation, error)
}
