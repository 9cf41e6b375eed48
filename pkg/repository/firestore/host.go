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

// hostDoc is the Firestore document representation of model.AIHost
type hostDoc struct {
	ID          string    `firestore:"ID"`
	UserID      string    `firestore:"UserID"`
	DisplayName string    `firestore:"DisplayName"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
}

func toHostDoc(h *model.AIHost) *hostDoc {
	return &hostDoc{
		ID:          h.ID.String(),
		UserID:      h.UserID.String(),
		DisplayName: h.DisplayName,
		CreatedAt:   h.CreatedAt,
	}
}

func fromHostDoc(d *hostDoc) *model.AIHost {
	return &model.AIHost{
		ID:          types.HostID(d.ID),
		UserID:      types.UserID(d.UserID),
		DisplayName: d.DisplayName,
		CreatedAt:   d.CreatedAt,
	}
}

// hostUserDoc maps a user ID to its host ID. Doc ID is the user ID, which
// makes the user→host bijection enforceable inside a transaction.
type hostUserDoc struct {
	HostID string `firestore:"HostID"`
}

type hostRepository struct {
	client *firestore.Client
}

func newHostRepository(client *firestore.Client) *hostRepository {
	return &hostRepository{client: client}
}

func (r *hostRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("aiHosts")
}

func (r *hostRepository) userIndex() *firestore.CollectionRef {
	return r.client.Collection("aiHostsByUser")
}

func (r *hostRepository) Create(ctx context.Context, host *model.AIHost) (*model.AIHost, error) {
	if host.UserID == "" {
		return nil, goerr.New("host user ID is required")
	}

	created := *host
	if created.ID == "" {
		created.ID = types.NewHostID()
	}
	created.CreatedAt = time.Now().UTC()

	indexRef := r.userIndex().Doc(created.UserID.String())
	hostRef := r.collection().Doc(created.ID.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(indexRef); err == nil {
			return goerr.New("host already exists for user", goerr.V("userID", created.UserID))
		} else if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to check host uniqueness", goerr.V("userID", created.UserID))
		}

		if err := tx.Set(indexRef, &hostUserDoc{HostID: created.ID.String()}); err != nil {
			return goerr.Wrap(err, "failed to create host user index")
		}
		if err := tx.Set(hostRef, toHostDoc(&created)); err != nil {
			return goerr.Wrap(err, "failed to create host")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *hostRepository) Get(ctx context.Context, id types.HostID) (*model.AIHost, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "host not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get host", goerr.V("id", id))
	}

	var d hostDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal host", goerr.V("id", id))
	}

	return fromHostDoc(&d), nil
}

func (r *hostRepository) GetByUserID(ctx context.Context, userID types.UserID) (*model.AIHost, error) {
	doc, err := r.userIndex().Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "host not found for user", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get host index", goerr.V("userID", userID))
	}

	var idx hostUserDoc
	if err := doc.DataTo(&idx); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal host index", goerr.V("userID", userID))
	}

	return r.Get(ctx, types.HostID(idx.HostID))
}

func (r *hostRepository) List(ctx context.Context) ([]*model.AIHost, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	var result []*model.AIHost
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate hosts")
		}

		var d hostDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal host", goerr.V("docID", doc.Ref.ID))
		}
		result = append(result, fromHostDoc(&d))
	}

	return result, nil
}
