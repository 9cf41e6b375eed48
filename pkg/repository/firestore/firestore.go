package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Firestore struct {
	client         *firestore.Client
	user           *userRepository
	host           *hostRepository
	conversation   *conversationRepository
	preference     *preferenceRepository
	arcade         *arcadeRepository
	recommendation *recommendationRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &Firestore{
		client:         client,
		user:           newUserRepository(client),
		host:           newHostRepository(client),
		conversation:   newConversationRepository(client),
		preference:     newPreferenceRepository(client),
		arcade:         newArcadeRepository(client),
		recommendation: newRecommendationRepository(client),
	}, nil
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Host() interfaces.HostRepository {
	return f.host
}

func (f *Firestore) Conversation() interfaces.ConversationRepository {
	return f.conversation
}

func (f *Firestore) Preference() interfaces.PreferenceRepository {
	return f.preference
}

func (f *Firestore) Arcade() interfaces.ArcadeRepository {
	return f.arcade
}

func (f *Firestore) Recommendation() interfaces.RecommendationRepository {
	return f.recommendation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
