package interfaces

import (
	"context"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
)

// HostRepository defines the interface for AIHost persistence
type HostRepository interface {
	// Create creates a new AI Host. Exactly one host may exist per user;
	// creating a second host for the same user fails.
	Create(ctx context.Context, host *model.AIHost) (*model.AIHost, error)

	// Get retrieves a host by ID
	Get(ctx context.Context, id types.HostID) (*model.AIHost, error)

	// GetByUserID retrieves the host owned by the given user.
	// Returns ErrNotFound if the user has no host yet.
	GetByUserID(ctx context.Context, userID types.UserID) (*model.AIHost, error)

	// List retrieves all hosts. Used by background refresh, not by
	// request handling.
	List(ctx context.Context) ([]*model.AIHost, error)
}
