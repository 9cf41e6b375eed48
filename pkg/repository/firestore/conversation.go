package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// turnDoc is the Firestore document representation of model.DialogueTurn
type turnDoc struct {
	ID        string    `firestore:"ID"`
	HostID    string    `firestore:"HostID"`
	Speaker   string    `firestore:"Speaker"`
	Text      string    `firestore:"Text"`
	Seq       int64     `firestore:"Seq"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

func toTurnDoc(t *model.DialogueTurn) *turnDoc {
	return &turnDoc{
		ID:        t.ID.String(),
		HostID:    t.HostID.String(),
		Speaker:   t.Speaker.String(),
		Text:      t.Text,
		Seq:       t.Seq,
		CreatedAt: t.CreatedAt,
	}
}

func fromTurnDoc(d *turnDoc) *model.DialogueTurn {
	return &model.DialogueTurn{
		ID:        types.TurnID(d.ID),
		HostID:    types.HostID(d.HostID),
		Speaker:   types.Speaker(d.Speaker),
		Text:      d.Text,
		Seq:       d.Seq,
		CreatedAt: d.CreatedAt,
	}
}

// turnCounterDoc tracks the last assigned Seq per host. Seq assignment is
// transactional so concurrent appends never produce duplicate or skipped
// sequence numbers.
type turnCounterDoc struct {
	LastSeq int64 `firestore:"LastSeq"`
}

type conversationRepository struct {
	client *firestore.Client
}

func newConversationRepository(client *firestore.Client) *conversationRepository {
	return &conversationRepository{client: client}
}

func (r *conversationRepository) hostDoc(hostID types.HostID) *firestore.DocumentRef {
	return r.client.Collection("aiHosts").Doc(hostID.String())
}

func (r *conversationRepository) turnsCollection(hostID types.HostID) *firestore.CollectionRef {
	return r.hostDoc(hostID).Collection("turns")
}

func (r *conversationRepository) counterDoc(hostID types.HostID) *firestore.DocumentRef {
	return r.hostDoc(hostID).Collection("meta").Doc("turnCounter")
}

func (r *conversationRepository) AppendTurn(ctx context.Context, hostID types.HostID, turn *model.DialogueTurn) (*model.DialogueTurn, error) {
	appended := *turn
	appended.HostID = hostID
	if err := appended.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dialogue turn")
	}

	if appended.ID == "" {
		appended.ID = types.NewTurnID()
	}
	appended.CreatedAt = time.Now().UTC()

	counterRef := r.counterDoc(hostID)
	turnRef := r.turnsCollection(hostID).Doc(appended.ID.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter turnCounterDoc
		doc, err := tx.Get(counterRef)
		switch {
		case err == nil:
			if err := doc.DataTo(&counter); err != nil {
				return goerr.Wrap(err, "failed to unmarshal turn counter", goerr.V("hostID", hostID))
			}
		case status.Code(err) == codes.NotFound:
			counter.LastSeq = 0
		default:
			return goerr.Wrap(err, "failed to get turn counter", goerr.V("hostID", hostID))
		}

		appended.Seq = counter.LastSeq + 1
		counter.LastSeq = appended.Seq

		if err := tx.Set(counterRef, &counter); err != nil {
			return goerr.Wrap(err, "failed to update turn counter", goerr.V("hostID", hostID))
		}
		if err := tx.Set(turnRef, toTurnDoc(&appended)); err != nil {
			return goerr.Wrap(err, "failed to append turn", goerr.V("hostID", hostID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &appended, nil
}

func (r *conversationRepository) ListTurns(ctx context.Context, hostID types.HostID) ([]*model.DialogueTurn, error) {
	iter := r.turnsCollection(hostID).OrderBy("Seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	turns := make([]*model.DialogueTurn, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate turns", goerr.V("hostID", hostID))
		}

		var d turnDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal turn", goerr.V("hostID", hostID))
		}
		turns = append(turns, fromTurnDoc(&d))
	}

	return turns, nil
}

func (r *conversationRepository) CountTurns(ctx context.Context, hostID types.HostID) (int, error) {
	doc, err := r.counterDoc(hostID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, goerr.Wrap(err, "failed to get turn counter", goerr.V("hostID", hostID))
	}

	var counter turnCounterDoc
	if err := doc.DataTo(&counter); err != nil {
		return 0, goerr.Wrap(err, "failed to unmarshal turn counter", goerr.V("hostID", hostID))
	}

	return int(counter.LastSeq), nil
}
