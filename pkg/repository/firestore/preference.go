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

// preferenceDoc is the Firestore document representation of
// model.PreferenceProfile. Doc ID is the user ID.
type preferenceDoc struct {
	UserID        string    `firestore:"UserID"`
	Interests     []string  `firestore:"Interests"`
	Values        []string  `firestore:"Values"`
	Goals         []string  `firestore:"Goals"`
	Dislikes      []string  `firestore:"Dislikes"`
	LastLearnedAt time.Time `firestore:"LastLearnedAt"`
}

func toPreferenceDoc(p *model.PreferenceProfile) *preferenceDoc {
	return &preferenceDoc{
		UserID:        p.UserID.String(),
		Interests:     p.Interests,
		Values:        p.Values,
		Goals:         p.Goals,
		Dislikes:      p.Dislikes,
		LastLearnedAt: p.LastLearnedAt,
	}
}

func fromPreferenceDoc(d *preferenceDoc) *model.PreferenceProfile {
	return &model.PreferenceProfile{
		UserID:        types.UserID(d.UserID),
		Interests:     d.Interests,
		Values:        d.Values,
		Goals:         d.Goals,
		Dislikes:      d.Dislikes,
		LastLearnedAt: d.LastLearnedAt,
	}
}

type preferenceRepository struct {
	client *firestore.Client
}

func newPreferenceRepository(client *firestore.Client) *preferenceRepository {
	return &preferenceRepository{client: client}
}

func (r *preferenceRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("preferences")
}

func (r *preferenceRepository) Upsert(ctx context.Context, profile *model.PreferenceProfile) (*model.PreferenceProfile, error) {
	if profile.UserID == "" {
		return nil, goerr.New("preference profile user ID is required")
	}

	stored := *profile
	stored.LastLearnedAt = time.Now().UTC()

	// Set without merge: the document is replaced wholesale, so a later
	// extraction never accumulates fields from an earlier one.
	docRef := r.collection().Doc(stored.UserID.String())
	if _, err := docRef.Set(ctx, toPreferenceDoc(&stored)); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert preference profile", goerr.V("userID", profile.UserID))
	}

	return &stored, nil
}

func (r *preferenceRepository) Get(ctx context.Context, userID types.UserID) (*model.PreferenceProfile, error) {
	doc, err := r.collection().Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "preference profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get preference profile", goerr.V("userID", userID))
	}

	var d preferenceDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal preference profile", goerr.V("userID", userID))
	}

	return fromPreferenceDoc(&d), nil
}
