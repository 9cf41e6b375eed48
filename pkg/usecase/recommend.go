package usecase

import (
	"context"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/service/aihost"
	"github.com/m-mizutani/goerr/v2"
)

// notEnoughSignalMessage is returned in place of results while the AI host
// has not learned any interests yet.
const notEnoughSignalMessage = "I don't know you well enough yet. Chat with me a bit more about what you're interested in, and I'll have some community suggestions for you!"

// RankedRecommendation is one persisted match result with its arcade
type RankedRecommendation struct {
	Recommendation *model.Recommendation
	Arcade         *model.Arcade
}

// RecommendUseCase turns a learned preference profile into persisted,
// ranked arcade recommendations and records user reactions to them.
type RecommendUseCase struct {
	repo interfaces.Repository
}

// NewRecommendUseCase creates a new RecommendUseCase instance
func NewRecommendUseCase(repo interfaces.Repository) *RecommendUseCase {
	return &RecommendUseCase{repo: repo}
}

// Recommend matches the user's profile against all open arcades. While the
// profile is absent or has no interests it returns an empty list and a
// guidance message; that is a normal outcome, not an error.
func (uc *RecommendUseCase) Recommend(ctx context.Context, userID types.UserID) ([]RankedRecommendation, string, error) {
	if _, err := uc.repo.User().Get(ctx, userID); err != nil {
		return nil, "", goerr.Wrap(ErrUserNotFound, "user not found", goerr.V("userID", userID))
	}

	profile, err := uc.repo.Preference().Get(ctx, userID)
	if err != nil || !profile.HasInterests() {
		return nil, notEnoughSignalMessage, nil
	}

	// Only open arcades are match candidates; the matcher itself does not
	// filter on visibility.
	candidates, err := uc.repo.Arcade().ListOpen(ctx)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to list open arcades")
	}

	matches := aihost.Match(model.PreferenceExtraction{Interests: profile.Interests}, candidates)
	if len(matches) == 0 {
		return nil, notEnoughSignalMessage, nil
	}

	results := make([]RankedRecommendation, 0, len(matches))
	for _, match := range matches {
		rec, err := uc.repo.Recommendation().Create(ctx, &model.Recommendation{
			UserID:     userID,
			ArcadeID:   match.Arcade.ID,
			Reason:     match.Reason,
			Confidence: match.Confidence,
		})
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to record recommendation",
				goerr.V("userID", userID),
				goerr.V("arcadeID", match.Arcade.ID),
			)
		}
		results = append(results, RankedRecommendation{
			Recommendation: rec,
			Arcade:         match.Arcade,
		})
	}

	return results, "", nil
}

// RecordAction marks a recommendation as clicked or joined. The entry must
// belong to the acting user.
func (uc *RecommendUseCase) RecordAction(ctx context.Context, userID types.UserID, recommendationID types.RecommendationID, action string) error {
	parsed, err := types.ParseRecommendationAction(action)
	if err != nil {
		return err
	}

	rec, err := uc.repo.Recommendation().Get(ctx, recommendationID)
	if err != nil {
		return goerr.Wrap(ErrRecommendationNotFound, "recommendation not found", goerr.V("recommendationID", recommendationID))
	}
	if rec.UserID != userID {
		return goerr.Wrap(ErrRecommendationNotFound, "recommendation belongs to another user", goerr.V("recommendationID", recommendationID))
	}

	now := time.Now().UTC()
	switch parsed {
	case types.RecommendationActionClick:
		_, err = uc.repo.Recommendation().MarkClicked(ctx, recommendationID, now)
	case types.RecommendationActionJoin:
		_, err = uc.repo.Recommendation().MarkJoined(ctx, recommendationID, now)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to record recommendation action",
			goerr.V("recommendationID", recommendationID),
			goerr.V("action", parsed),
		)
	}

	return nil
}

// ListHistory returns the user's recommendation ledger, newest first
func (uc *RecommendUseCase) ListHistory(ctx context.Context, userID types.UserID) ([]*model.Recommendation, error) {
	return uc.repo.Recommendation().ListByUserID(ctx, userID)
}
