package model

import (
	"strings"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/types"
)

// PreferenceProfile is the derived understanding of a user. Each list is
// deduplicated. The profile reflects the latest extraction only: an upsert
// fully overwrites the four lists rather than merging with prior values.
type PreferenceProfile struct {
	UserID        types.UserID
	Interests     []string
	Values        []string
	Goals         []string
	Dislikes      []string
	LastLearnedAt time.Time
}

// HasInterests reports whether the profile carries any interest signal
func (p *PreferenceProfile) HasInterests() bool {
	return p != nil && len(p.Interests) > 0
}

// PreferenceExtraction is the structured output of one extraction pass
// over a conversation transcript.
type PreferenceExtraction struct {
	Interests []string
	Values    []string
	Goals     []string
	Dislikes  []string
}

// Empty reports whether the extraction produced no signal at all
func (e PreferenceExtraction) Empty() bool {
	return len(e.Interests) == 0 && len(e.Values) == 0 && len(e.Goals) == 0 && len(e.Dislikes) == 0
}

// HasSignal reports whether the extraction carries interests or values,
// the minimum needed to justify overwriting a stored profile.
func (e PreferenceExtraction) HasSignal() bool {
	return len(e.Interests) > 0 || len(e.Values) > 0
}

// Normalize trims whitespace, drops empty entries, and deduplicates each
// list case-insensitively while keeping first-seen order. Re-running an
// extraction over the same transcript therefore yields the same sets.
func (e PreferenceExtraction) Normalize() PreferenceExtraction {
	return PreferenceExtraction{
		Interests: dedupeFold(e.Interests),
		Values:    dedupeFold(e.Values),
		Goals:     dedupeFold(e.Goals),
		Dislikes:  dedupeFold(e.Dislikes),
	}
}

func dedupeFold(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, trimmed)
	}
	return result
}
