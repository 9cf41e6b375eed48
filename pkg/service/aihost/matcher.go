package aihost

import (
	"fmt"
	"sort"
	"strings"

	"github.com/central-square/centralsquare/pkg/domain/model"
)

const maxMatchResults = 5

// minConfidence is the exclusive floor: candidates scoring at or below it
// are dropped.
const minConfidence = 0.1

// Match scores candidates against the profile's interests and returns up
// to five results ranked by descending confidence.
//
// The tag comparison is a bidirectional case-insensitive substring match:
// an interest matches a tag when either contains the other. This is
// deliberately loose (a one-letter interest matches nearly everything);
// callers that need stricter matching should pre-filter their interests.
//
// Visibility is the caller's responsibility: Match scores every candidate
// it is given, so pass only open arcades when gated ones must not surface.
func Match(profile model.PreferenceExtraction, candidates []*model.Arcade) []model.MatchResult {
	if len(profile.Interests) == 0 || len(candidates) == 0 {
		return nil
	}

	interests := make([]string, 0, len(profile.Interests))
	for _, interest := range profile.Interests {
		interests = append(interests, strings.ToLower(interest))
	}

	results := make([]model.MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		var tagMatches []string
		for _, tag := range candidate.Tags {
			lowered := strings.ToLower(tag)
			for _, interest := range interests {
				if strings.Contains(lowered, interest) || strings.Contains(interest, lowered) {
					tagMatches = append(tagMatches, tag)
					break
				}
			}
		}

		descMatch := false
		desc := strings.ToLower(candidate.Description)
		for _, interest := range interests {
			if desc != "" && strings.Contains(desc, interest) {
				descMatch = true
				break
			}
		}

		score := float64(len(tagMatches)) * 0.7
		if descMatch {
			score += 0.3
		}
		confidence := score / 3
		if confidence > 1 {
			confidence = 1
		}
		if confidence <= minConfidence {
			continue
		}

		var reason string
		switch {
		case len(tagMatches) > 0:
			reason = fmt.Sprintf("Matches your interests in %s", strings.Join(tagMatches, ", "))
		case descMatch:
			reason = "Related to your interests"
		default:
			reason = "Based on your profile"
		}

		results = append(results, model.MatchResult{
			Arcade:     candidate,
			Reason:     reason,
			Confidence: confidence,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	if len(results) > maxMatchResults {
		results = results[:maxMatchResults]
	}
	return results
}
