package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// arcadeDoc is the Firestore document representation of model.Arcade
type arcadeDoc struct {
	ID          string    `firestore:"ID"`
	Name        string    `firestore:"Name"`
	Description string    `firestore:"Description"`
	Tags        []string  `firestore:"Tags"`
	MemberCount int       `firestore:"MemberCount"`
	PostCount   int       `firestore:"PostCount"`
	IsOpen      bool      `firestore:"IsOpen"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
	UpdatedAt   time.Time `firestore:"UpdatedAt"`
}

func toArcadeDoc(a *model.Arcade) *arcadeDoc {
	return &arcadeDoc{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description,
		Tags:        a.Tags,
		MemberCount: a.MemberCount,
		PostCount:   a.PostCount,
		IsOpen:      a.IsOpen,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromArcadeDoc(d *arcadeDoc) *model.Arcade {
	return &model.Arcade{
		ID:          types.ArcadeID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Tags:        d.Tags,
		MemberCount: d.MemberCount,
		PostCount:   d.PostCount,
		IsOpen:      d.IsOpen,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type arcadeRepository struct {
	client *firestore.Client
}

func newArcadeRepository(client *firestore.Client) *arcadeRepository {
	return &arcadeRepository{client: client}
}

func (r *arcadeRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("arcades")
}

func (r *arcadeRepository) Put(ctx context.Context, arcade *model.Arcade) (*model.Arcade, error) {
	if err := arcade.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid arcade")
	}

	now := time.Now().UTC()
	stored := *arcade
	if stored.ID == "" {
		stored.ID = types.NewArcadeID()
	}
	stored.UpdatedAt = now

	docRef := r.collection().Doc(stored.ID.String())
	if doc, err := docRef.Get(ctx); err == nil {
		var existing arcadeDoc
		if err := doc.DataTo(&existing); err == nil {
			stored.CreatedAt = existing.CreatedAt
		}
	} else {
		stored.CreatedAt = now
	}

	if _, err := docRef.Set(ctx, toArcadeDoc(&stored)); err != nil {
		return nil, goerr.Wrap(err, "failed to put arcade", goerr.V("id", stored.ID))
	}

	return &stored, nil
}

func (r *arcadeRepository) Get(ctx context.Context, id types.ArcadeID) (*model.Arcade, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "arcade not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get arcade", goerr.V("id", id))
	}

	var d arcadeDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal arcade", goerr.V("id", id))
	}

	return fromArcadeDoc(&d), nil
}

func (r *arcadeRepository) List(ctx context.Context) ([]*model.Arcade, error) {
	return r.list(ctx, r.collection().Query)
}

func (r *arcadeRepository) ListOpen(ctx context.Context) ([]*model.Arcade, error) {
	return r.list(ctx, r.collection().Where("IsOpen", "==", true))
}

func (r *arcadeRepository) list(ctx context.Context, q firestore.Query) ([]*model.Arcade, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	arcades := make([]*model.Arcade, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate arcades")
		}

		var d arcadeDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal arcade")
		}
		arcades = append(arcades, fromArcadeDoc(&d))
	}

	// Same ordering contract as the memory backend: member count
	// descending, then name.
	sort.SliceStable(arcades, func(i, j int) bool {
		if arcades[i].MemberCount != arcades[j].MemberCount {
			return arcades[i].MemberCount > arcades[j].MemberCount
		}
		return arcades[i].Name < arcades[j].Name
	})

	return arcades, nil
}
