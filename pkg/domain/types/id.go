package types

import "github.com/google/uuid"

// UserID identifies a Central Square user. It is issued by the identity
// collaborator and treated as opaque here.
type UserID string

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}

// HostID is a UUID-based identifier for an AI Host
type HostID string

// NewHostID generates a new UUID v4 HostID
func NewHostID() HostID {
	return HostID(uuid.New().String())
}

// String returns the string representation of the host ID
func (id HostID) String() string {
	return string(id)
}

// TurnID is a UUID-based identifier for a dialogue turn
type TurnID string

// NewTurnID generates a new UUID v4 TurnID
func NewTurnID() TurnID {
	return TurnID(uuid.New().String())
}

// String returns the string representation of the turn ID
func (id TurnID) String() string {
	return string(id)
}

// ArcadeID is a UUID-based identifier for an Arcade (community)
type ArcadeID string

// NewArcadeID generates a new UUID v4 ArcadeID
func NewArcadeID() ArcadeID {
	return ArcadeID(uuid.New().String())
}

// String returns the string representation of the arcade ID
func (id ArcadeID) String() string {
	return string(id)
}

// RecommendationID is a UUID-based identifier for a recommendation ledger entry
type RecommendationID string

// NewRecommendationID generates a new UUID v4 RecommendationID
func NewRecommendationID() RecommendationID {
	return RecommendationID(uuid.New().String())
}

// String returns the string representation of the recommendation ID
func (id RecommendationID) String() string {
	return string(id)
}
