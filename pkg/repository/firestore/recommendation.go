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

// recommendationDoc is the Firestore document representation of
// model.Recommendation
type recommendationDoc struct {
	ID         string     `firestore:"ID"`
	UserID     string     `firestore:"UserID"`
	ArcadeID   string     `firestore:"ArcadeID"`
	Reason     string     `firestore:"Reason"`
	Confidence float64    `firestore:"Confidence"`
	ClickedAt  *time.Time `firestore:"ClickedAt"`
	JoinedAt   *time.Time `firestore:"JoinedAt"`
	CreatedAt  time.Time  `firestore:"CreatedAt"`
}

func toRecommendationDoc(rec *model.Recommendation) *recommendationDoc {
	return &recommendationDoc{
		ID:         rec.ID.String(),
		UserID:     rec.UserID.String(),
		ArcadeID:   rec.ArcadeID.String(),
		Reason:     rec.Reason,
		Confidence: rec.Confidence,
		ClickedAt:  rec.ClickedAt,
		JoinedAt:   rec.JoinedAt,
		CreatedAt:  rec.CreatedAt,
	}
}

func fromRecommendationDoc(d *recommendationDoc) *model.Recommendation {
	return &model.Recommendation{
		ID:         types.RecommendationID(d.ID),
		UserID:     types.UserID(d.UserID),
		ArcadeID:   types.ArcadeID(d.ArcadeID),
		Reason:     d.Reason,
		Confidence: d.Confidence,
		ClickedAt:  d.ClickedAt,
		JoinedAt:   d.JoinedAt,
		CreatedAt:  d.CreatedAt,
	}
}

type recommendationRepository struct {
	client *firestore.Client
}

func newRecommendationRepository(client *firestore.Client) *recommendationRepository {
	return &recommendationRepository{client: client}
}

func (r *recommendationRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("recommendations")
}

func (r *recommendationRepository) Create(ctx context.Context, rec *model.Recommendation) (*model.Recommendation, error) {
	if rec.UserID == "" {
		return nil, goerr.New("recommendation user ID is required")
	}
	if rec.ArcadeID == "" {
		return nil, goerr.New("recommendation arcade ID is required")
	}

	created := *rec
	if created.ID == "" {
		created.ID = types.NewRecommendationID()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Create(ctx, toRecommendationDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create recommendation", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *recommendationRepository) Get(ctx context.Context, id types.RecommendationID) (*model.Recommendation, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "recommendation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get recommendation", goerr.V("id", id))
	}

	var d recommendationDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal recommendation", goerr.V("id", id))
	}

	return fromRecommendationDoc(&d), nil
}

func (r *recommendationRepository) MarkClicked(ctx context.Context, id types.RecommendationID, at time.Time) (*model.Recommendation, error) {
	return r.mark(ctx, id, func(rec *model.Recommendation) error {
		return rec.MarkClicked(at)
	})
}

func (r *recommendationRepository) MarkJoined(ctx context.Context, id types.RecommendationID, at time.Time) (*model.Recommendation, error) {
	return r.mark(ctx, id, func(rec *model.Recommendation) error {
		return rec.MarkJoined(at)
	})
}

// mark applies a model-level transition inside a transaction so that
// concurrent action reports cannot double-set a timestamp.
func (r *recommendationRepository) mark(ctx context.Context, id types.RecommendationID, apply func(*model.Recommendation) error) (*model.Recommendation, error) {
	docRef := r.collection().Doc(id.String())

	var updated *model.Recommendation
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "recommendation not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get recommendation", goerr.V("id", id))
		}

		var d recommendationDoc
		if err := doc.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to unmarshal recommendation", goerr.V("id", id))
		}

		rec := fromRecommendationDoc(&d)
		if err := apply(rec); err != nil {
			return err
		}

		if err := tx.Set(docRef, toRecommendationDoc(rec)); err != nil {
			return goerr.Wrap(err, "failed to update recommendation", goerr.V("id", id))
		}

		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *recommendationRepository) ListByUserID(ctx context.Context, userID types.UserID) ([]*model.Recommendation, error) {
	iter := r.collection().
		Where("UserID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Recommendation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate recommendations", goerr.V("userID", userID))
		}

		var d recommendationDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal recommendation")
		}
		result = append(result, fromRecommendationDoc(&d))
	}

	return result, nil
}
