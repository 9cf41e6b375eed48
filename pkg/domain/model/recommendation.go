package model

import (
	"time"

	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MatchResult is one scored arcade candidate returned from a match
// invocation. It is ephemeral; persisting it as a Recommendation is the
// caller's choice.
type MatchResult struct {
	Arcade     *Arcade
	Reason     string
	Confidence float64
}

// Recommendation is a ledger entry recording that a match result was shown
// to a user, and whether the user clicked or joined afterwards. ClickedAt
// and JoinedAt are each set at most once. A join without a prior click is
// permitted, but when both are set the click must not come after the join.
type Recommendation struct {
	ID         types.RecommendationID
	UserID     types.UserID
	ArcadeID   types.ArcadeID
	Reason     string
	Confidence float64
	ClickedAt  *time.Time
	JoinedAt   *time.Time
	CreatedAt  time.Time
}

// MarkClicked sets ClickedAt. It fails if the click was already recorded
// or if a join has already been recorded before the given time.
func (r *Recommendation) MarkClicked(at time.Time) error {
	if r.ClickedAt != nil {
		return goerr.New("recommendation click already recorded", goerr.V("id", r.ID))
	}
	if r.JoinedAt != nil && at.After(*r.JoinedAt) {
		return goerr.New("click time must not be after join time",
			goerr.V("id", r.ID),
			goerr.V("clickedAt", at),
			goerr.V("joinedAt", *r.JoinedAt))
	}
	t := at.UTC()
	r.ClickedAt = &t
	return nil
}

// MarkJoined sets JoinedAt. It fails if the join was already recorded.
// A prior click is not required.
func (r *Recommendation) MarkJoined(at time.Time) error {
	if r.JoinedAt != nil {
		return goerr.New("recommendation join already recorded", goerr.V("id", r.ID))
	}
	if r.ClickedAt != nil && at.Before(*r.ClickedAt) {
		return goerr.New("join time must not be before click time",
			goerr.V("id", r.ID),
			goerr.V("clickedAt", *r.ClickedAt),
			goerr.V("joinedAt", at))
	}
	t := at.UTC()
	r.JoinedAt = &t
	return nil
}
