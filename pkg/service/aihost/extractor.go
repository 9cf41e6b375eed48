package aihost

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/service/llm"
	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/m-mizutani/gollem"
)

const extractorSystemPrompt = `You are a preference analysis assistant for a community-discovery app.
Analyze the conversation transcript and extract the user's preferences.
Return ONLY a JSON object with four string-array fields: interests, values, goals, dislikes.
Keep each entry short (a word or a short phrase), lower-cased where natural.
If a field has no signal in the transcript, return it as an empty array.`

// maxFallbackInterests caps the keyword extractor's output
const maxFallbackInterests = 5

// interestKeywords maps trigger phrases to canonical interests for the
// keyword fallback. A canonical interest is included when any of its
// triggers appears as a substring of the user's turns.
var interestKeywords = []struct {
	canonical string
	triggers  []string
}{
	{"ai", []string{"ai", "artificial intelligence", "machine learning", "ai ethics"}},
	{"climate", []string{"climate", "environment", "sustainability"}},
	{"education", []string{"education", "learning", "teaching"}},
	{"tech", []string{"technology", "software", "programming"}},
	{"health", []string{"health", "wellness", "medical"}},
}

// Extractor converts a dialogue transcript into a structured preference
// extraction. Like the Responder it never fails: backend or parse errors
// route to the keyword fallback.
type Extractor struct {
	llmClient *llm.Client
}

// NewExtractor creates an Extractor. llmClient may be unconfigured.
func NewExtractor(llmClient *llm.Client) *Extractor {
	return &Extractor{llmClient: llmClient}
}

// Extract analyzes the history and returns the extracted preferences. The
// result may be empty for short or signal-free transcripts; that is not an
// error.
func (e *Extractor) Extract(ctx context.Context, history []*model.DialogueTurn) model.PreferenceExtraction {
	extraction, err := e.attemptExtract(ctx, history)
	if err != nil {
		logging.From(ctx).Debug("preference extraction fell back to keywords",
			"reason", err.Error(),
			"turns", len(history),
		)
		return keywordExtract(history)
	}
	return extraction
}

type extractorResponse struct {
	Interests []string `json:"interests"`
	Values    []string `json:"values"`
	Goals     []string `json:"goals"`
	Dislikes  []string `json:"dislikes"`
}

func (e *Extractor) attemptExtract(ctx context.Context, history []*model.DialogueTurn) (model.PreferenceExtraction, error) {
	var sb strings.Builder
	sb.WriteString("## Transcript\n\n")
	for _, turn := range history {
		sb.WriteString(string(turn.Speaker))
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
		sb.WriteString("\n")
	}

	raw, err := e.llmClient.CompleteJSON(ctx, extractorSystemPrompt, sb.String(), buildExtractorSchema())
	if err != nil {
		return model.PreferenceExtraction{}, err
	}

	var resp extractorResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return model.PreferenceExtraction{}, err
	}

	extraction := model.PreferenceExtraction{
		Interests: resp.Interests,
		Values:    resp.Values,
		Goals:     resp.Goals,
		Dislikes:  resp.Dislikes,
	}
	return extraction.Normalize(), nil
}

// buildExtractorSchema creates the JSON schema for structured output
func buildExtractorSchema() *gollem.Parameter {
	stringList := func(desc string) *gollem.Parameter {
		return &gollem.Parameter{
			Type:        gollem.TypeArray,
			Description: desc,
			Items:       &gollem.Parameter{Type: gollem.TypeString},
			Required:    true,
		}
	}

	return &gollem.Parameter{
		Title:       "PreferenceExtraction",
		Description: "Preferences extracted from a conversation transcript",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"interests": stringList("Topics the user is interested in"),
			"values":    stringList("Values the user cares about in a community"),
			"goals":     stringList("Goals the user wants to achieve"),
			"dislikes":  stringList("Things the user wants to avoid"),
		},
	}
}

// keywordExtract scans the user-authored turns for known trigger phrases
// and the "interested in" pattern. It produces interests only; the other
// fields stay empty on this path.
func keywordExtract(history []*model.DialogueTurn) model.PreferenceExtraction {
	var sb strings.Builder
	for _, turn := range history {
		if turn.Speaker == types.SpeakerUser {
			sb.WriteString(turn.Text)
			sb.WriteString(" ")
		}
	}
	text := strings.ToLower(sb.String())

	var interests []string
	for _, kw := range interestKeywords {
		for _, trigger := range kw.triggers {
			if strings.Contains(text, trigger) {
				interests = append(interests, kw.canonical)
				break
			}
		}
	}

	interests = append(interests, interestPhrases(text)...)

	extraction := model.PreferenceExtraction{Interests: interests}.Normalize()
	if len(extraction.Interests) > maxFallbackInterests {
		extraction.Interests = extraction.Interests[:maxFallbackInterests]
	}
	return extraction
}

// interestPhrases captures what follows the literal phrase "interested in"
// up to the next sentence boundary, split on commas and "and".
func interestPhrases(text string) []string {
	const marker = "interested in "

	idx := strings.Index(text, marker)
	if idx < 0 {
		return nil
	}
	rest := text[idx+len(marker):]

	if end := strings.IndexAny(rest, ".!?\n"); end >= 0 {
		rest = rest[:end]
	}

	rest = strings.ReplaceAll(rest, " and ", ",")
	var phrases []string
	for _, fragment := range strings.Split(rest, ",") {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) > 2 {
			phrases = append(phrases, fragment)
		}
	}
	return phrases
}
