package memory

import (
	"context"
	"sync"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type conversationRepository struct {
	mu    sync.Mutex
	turns map[types.HostID][]*model.DialogueTurn
}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{
		turns: make(map[types.HostID][]*model.DialogueTurn),
	}
}

func copyTurn(t *model.DialogueTurn) *model.DialogueTurn {
	copied := *t
	return &copied
}

func (r *conversationRepository) AppendTurn(ctx context.Context, hostID types.HostID, turn *model.DialogueTurn) (*model.DialogueTurn, error) {
	appended := copyTurn(turn)
	appended.HostID = hostID
	if err := appended.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dialogue turn")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if appended.ID == "" {
		appended.ID = types.NewTurnID()
	}
	appended.Seq = int64(len(r.turns[hostID])) + 1
	appended.CreatedAt = time.Now().UTC()

	r.turns[hostID] = append(r.turns[hostID], appended)
	return copyTurn(appended), nil
}

func (r *conversationRepository) ListTurns(ctx context.Context, hostID types.HostID) ([]*model.DialogueTurn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Turns are appended in Seq order, so the slice is already sorted.
	result := make([]*model.DialogueTurn, 0, len(r.turns[hostID]))
	for _, t := range r.turns[hostID] {
		result = append(result, copyTurn(t))
	}

	return result, nil
}

func (r *conversationRepository) CountTurns(ctx context.Context, hostID types.HostID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.turns[hostID]), nil
}
