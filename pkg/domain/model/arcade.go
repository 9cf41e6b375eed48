package model

import (
	"time"

	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Arcade is a community that users can join. Arcades are owned by the
// community-management collaborator; this core treats them as a read-mostly
// catalog of match candidates.
type Arcade struct {
	ID          types.ArcadeID
	Name        string
	Description string
	Tags        []string
	MemberCount int
	PostCount   int
	IsOpen      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the arcade record before it is stored
func (a *Arcade) Validate() error {
	if a.Name == "" {
		return goerr.New("arcade name is required")
	}
	if a.MemberCount < 0 {
		return goerr.New("arcade member count must not be negative", goerr.V("memberCount", a.MemberCount))
	}
	if a.PostCount < 0 {
		return goerr.New("arcade post count must not be negative", goerr.V("postCount", a.PostCount))
	}
	return nil
}
