package memory

import (
	"github.com/central-square/centralsquare/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository implementation for development and
// tests. All entity stores copy values on the way in and out, so callers
// never share mutable state with the store.
type Memory struct {
	user           *userRepository
	host           *hostRepository
	conversation   *conversationRepository
	preference     *preferenceRepository
	arcade         *arcadeRepository
	recommendation *recommendationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:           newUserRepository(),
		host:           newHostRepository(),
		conversation:   newConversationRepository(),
		preference:     newPreferenceRepository(),
		arcade:         newArcadeRepository(),
		recommendation: newRecommendationRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Host() interfaces.HostRepository {
	return m.host
}

func (m *Memory) Conversation() interfaces.ConversationRepository {
	return m.conversation
}

func (m *Memory) Preference() interfaces.PreferenceRepository {
	return m.preference
}

func (m *Memory) Arcade() interfaces.ArcadeRepository {
	return m.arcade
}

func (m *Memory) Recommendation() interfaces.RecommendationRepository {
	return m.recommendation
}

func (m *Memory) Close() error {
	return nil
}
