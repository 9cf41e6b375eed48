package model

import (
	"time"

	"github.com/central-square/centralsquare/pkg/domain/types"
)

// User is the read model of a Central Square user profile. The record is
// owned by the identity collaborator; this core only reads it to resolve
// display names and to reject chat requests for users that do not exist yet.
type User struct {
	ID          types.UserID
	DisplayName string
	Bio         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
