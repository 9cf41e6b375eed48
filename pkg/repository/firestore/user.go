package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userDoc is the Firestore document representation of model.User
type userDoc struct {
	ID          string    `firestore:"ID"`
	DisplayName string    `firestore:"DisplayName"`
	Bio         string    `firestore:"Bio"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
	UpdatedAt   time.Time `firestore:"UpdatedAt"`
}

func toUserDoc(u *model.User) *userDoc {
	return &userDoc{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func fromUserDoc(d *userDoc) *model.User {
	return &model.User{
		ID:          types.UserID(d.ID),
		DisplayName: d.DisplayName,
		Bio:         d.Bio,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type userRepository struct {
	client *firestore.Client
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("users")
}

func (r *userRepository) Put(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		return nil, goerr.New("user ID is required")
	}

	now := time.Now().UTC()
	stored := *user
	stored.UpdatedAt = now

	docRef := r.collection().Doc(stored.ID.String())
	if doc, err := docRef.Get(ctx); err == nil {
		var existing userDoc
		if err := doc.DataTo(&existing); err == nil {
			stored.CreatedAt = existing.CreatedAt
		}
	} else {
		stored.CreatedAt = now
	}

	if _, err := docRef.Set(ctx, toUserDoc(&stored)); err != nil {
		return nil, goerr.Wrap(err, "failed to put user", goerr.V("id", user.ID))
	}

	return &stored, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var d userDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("id", id))
	}

	return fromUserDoc(&d), nil
}
