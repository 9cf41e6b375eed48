package interfaces

import (
	"context"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
)

// ConversationRepository defines the interface for the append-only dialogue
// log of each AI Host. There are deliberately no update or delete
// operations: a turn, once appended, is immutable.
type ConversationRepository interface {
	// AppendTurn appends a turn to the host's log. The repository assigns
	// the turn ID (if empty), the per-host monotonically increasing Seq,
	// and CreatedAt.
	AppendTurn(ctx context.Context, hostID types.HostID, turn *model.DialogueTurn) (*model.DialogueTurn, error)

	// ListTurns returns all turns of the host in strict Seq-ascending order
	ListTurns(ctx context.Context, hostID types.HostID) ([]*model.DialogueTurn, error)

	// CountTurns returns the number of turns appended for the host
	CountTurns(ctx context.Context, hostID types.HostID) (int, error)
}
