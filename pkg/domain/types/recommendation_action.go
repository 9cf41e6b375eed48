package types

import "fmt"

// RecommendationAction represents a user interaction recorded against a
// recommendation ledger entry
type RecommendationAction string

const (
	RecommendationActionClick RecommendationAction = "click"
	RecommendationActionJoin  RecommendationAction = "join"
)

// AllRecommendationActions returns all valid recommendation actions
func AllRecommendationActions() []RecommendationAction {
	return []RecommendationAction{
		RecommendationActionClick,
		RecommendationActionJoin,
	}
}

// IsValid checks if the recommendation action is valid
func (a RecommendationAction) IsValid() bool {
	switch a {
	case RecommendationActionClick, RecommendationActionJoin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the recommendation action
func (a RecommendationAction) String() string {
	return string(a)
}

// ParseRecommendationAction parses a string into a RecommendationAction
func ParseRecommendationAction(s string) (RecommendationAction, error) {
	action := RecommendationAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid recommendation action: %s", s)
	}
	return action, nil
}
