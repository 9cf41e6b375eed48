package aihost

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/service/llm"
	"github.com/central-square/centralsquare/pkg/utils/logging"
)

//go:embed prompts/responder_system.md
var responderSystemPrompt string

// Profile is the slice of the user the responder is allowed to see
type Profile struct {
	Name      string
	Bio       string
	Interests []string
}

// Responder produces the next assistant utterance for a conversation. It
// delegates to the LLM backend when one is configured and falls back to a
// deterministic reply otherwise.
type Responder struct {
	llmClient *llm.Client
}

// NewResponder creates a Responder. llmClient may be unconfigured.
func NewResponder(llmClient *llm.Client) *Responder {
	return &Responder{llmClient: llmClient}
}

// Generate returns the assistant reply for the given history and profile.
// It never fails: any backend error routes to the deterministic fallback,
// so the caller always gets a usable reply.
func (r *Responder) Generate(ctx context.Context, history []*model.DialogueTurn, profile Profile) string {
	reply, err := r.attemptGenerate(ctx, history, profile)
	if err != nil {
		logging.From(ctx).Debug("response generation fell back to rules",
			"reason", err.Error(),
			"turns", len(history),
		)
		return fallbackReply(history, profile)
	}
	return reply
}

func (r *Responder) attemptGenerate(ctx context.Context, history []*model.DialogueTurn, profile Profile) (string, error) {
	prompt := buildResponderPrompt(history, profile)

	reply, err := r.llmClient.Complete(ctx, responderSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", llm.ErrNotConfigured
	}
	return reply, nil
}

func buildResponderPrompt(history []*model.DialogueTurn, profile Profile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## User\n\nName: %s\n", profile.Name)
	if profile.Bio != "" {
		fmt.Fprintf(&sb, "Bio: %s\n", profile.Bio)
	}
	if len(profile.Interests) > 0 {
		fmt.Fprintf(&sb, "Known interests: %s\n", strings.Join(profile.Interests, ", "))
	}

	sb.WriteString("\n## Conversation so far\n\n")
	for _, turn := range history {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Speaker, turn.Text)
	}
	sb.WriteString("\nWrite the next assistant reply.")

	return sb.String()
}

// fallbackReply implements the deterministic ladder: greeting on the first
// turn, topic narrowing on recognized keywords, then generic prompts that
// wind the conversation toward recommendations. Evaluated top to bottom,
// first match wins.
func fallbackReply(history []*model.DialogueTurn, profile Profile) string {
	if len(history) == 1 {
		if profile.Name != "" {
			return fmt.Sprintf("Hi %s! Welcome to Central Square. I'm here to help you find communities you'll love. What are you interested in these days?", profile.Name)
		}
		return "Hi! Welcome to Central Square. I'm here to help you find communities you'll love. What are you interested in these days?"
	}

	var sb strings.Builder
	for _, interest := range profile.Interests {
		sb.WriteString(interest)
		sb.WriteString(" ")
	}
	for _, turn := range history {
		if turn.Speaker == types.SpeakerUser {
			sb.WriteString(turn.Text)
			sb.WriteString(" ")
		}
	}
	text := strings.ToLower(sb.String())

	switch {
	case strings.Contains(text, "ai") || strings.Contains(text, "artificial intelligence"):
		return "AI is a great topic! Are you more drawn to the ethics side, building things yourself, or how AI is applied in the real world?"
	case strings.Contains(text, "climate") || strings.Contains(text, "environment"):
		return "Climate is such an important area. Are you interested in policy, sustainable living, or climate tech and innovation?"
	case strings.Contains(text, "education") || strings.Contains(text, "learning"):
		return "Education is close to my heart! Are you more into teaching, learning new skills yourself, or how technology is changing education?"
	}

	if len(history) <= 3 {
		return "That's interesting! Tell me a bit more. What about it excites you the most?"
	}
	if len(history) <= 5 {
		return "I'm getting a good picture of your interests. What values matter most to you in a community: deep discussion, hands-on projects, or meeting like-minded people?"
	}

	return "I think I know you well enough to suggest some communities now. Check out your recommendations, I picked a few Arcades you might enjoy!"
}
