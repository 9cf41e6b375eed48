package interfaces

import (
	"context"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
)

// UserRepository defines the interface for the user profile read model
type UserRepository interface {
	// Put creates or replaces a user profile
	Put(ctx context.Context, user *model.User) (*model.User, error)

	// Get retrieves a user by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id types.UserID) (*model.User, error)
}
