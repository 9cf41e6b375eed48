package interfaces

import (
	"context"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
)

// ArcadeRepository defines the interface for the Arcade candidate catalog
type ArcadeRepository interface {
	// Put creates or replaces an arcade record
	Put(ctx context.Context, arcade *model.Arcade) (*model.Arcade, error)

	// Get retrieves an arcade by ID
	Get(ctx context.Context, id types.ArcadeID) (*model.Arcade, error)

	// List retrieves all arcades
	List(ctx context.Context) ([]*model.Arcade, error)

	// ListOpen retrieves arcades with open (non-invite-gated) visibility,
	// ordered by member count descending, then name, for a stable match
	// candidate order.
	ListOpen(ctx context.Context) ([]*model.Arcade, error)
}
