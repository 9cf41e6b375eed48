package model

import (
	"time"

	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DialogueTurn is one utterance in a host conversation. Turns form an
// append-only log: a turn is never mutated or deleted once appended.
// Ordering within a host is carried by Seq, a per-host monotonically
// increasing sequence number assigned by the repository; CreatedAt is
// retained as metadata only.
type DialogueTurn struct {
	ID        types.TurnID
	HostID    types.HostID
	Speaker   types.Speaker
	Text      string
	Seq       int64
	CreatedAt time.Time
}

// Validate checks the turn before it is appended
func (t *DialogueTurn) Validate() error {
	if t.HostID == "" {
		return goerr.New("turn host ID is required")
	}
	if !t.Speaker.IsValid() {
		return goerr.New("invalid turn speaker", goerr.V("speaker", t.Speaker))
	}
	if t.Text == "" {
		return goerr.New("turn text is required")
	}
	return nil
}
