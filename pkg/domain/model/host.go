package model

import (
	"time"

	"github.com/central-square/centralsquare/pkg/domain/types"
)

// DefaultHostName is the display name given to a lazily created AI Host
const DefaultHostName = "Square Guide"

// AIHost is the per-user conversational assistant instance. Exactly one
// host exists per user; it is created lazily on first interaction and
// never deleted.
type AIHost struct {
	ID          types.HostID
	UserID      types.UserID
	DisplayName string
	CreatedAt   time.Time
}

// NewAIHost creates an AIHost for the given user with the default name
func NewAIHost(userID types.UserID) *AIHost {
	return &AIHost{
		ID:          types.NewHostID(),
		UserID:      userID,
		DisplayName: DefaultHostName,
	}
}
