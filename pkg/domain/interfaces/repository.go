package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	Host() HostRepository
	Conversation() ConversationRepository
	Preference() PreferenceRepository
	Arcade() ArcadeRepository
	Recommendation() RecommendationRepository

	Close() error
}
