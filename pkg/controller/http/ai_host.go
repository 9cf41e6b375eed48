package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/model/auth"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/usecase"
	"github.com/central-square/centralsquare/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body) //nolint:errcheck // header already committed
}

// postChatHandler handles one inbound chat message
func postChatHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Message string `json:"message"`
	}
	type response struct {
		Response string `json:"response"`
		AIHostID string `json:"aiHostId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid chat request body"),
				http.StatusBadRequest, "message is required")
			return
		}
		if req.Message == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("empty chat message"),
				http.StatusBadRequest, "message is required")
			return
		}

		reply, hostID, err := uc.Chat.HandleMessage(r.Context(), id.UserID, req.Message)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound, "user not found")
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, "failed to process message")
			return
		}

		writeJSON(w, http.StatusOK, response{
			Response: reply,
			AIHostID: hostID.String(),
		})
	}
}

// getChatHandler returns the host and the chronological transcript
func getChatHandler(uc *usecase.UseCases) http.HandlerFunc {
	type hostResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type messageResponse struct {
		ID        string    `json:"id"`
		Role      string    `json:"role"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type response struct {
		AIHost   hostResponse      `json:"aiHost"`
		Messages []messageResponse `json:"messages"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		host, turns, err := uc.Chat.History(r.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound, "user not found")
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, "failed to load conversation")
			return
		}

		resp := response{
			AIHost: hostResponse{
				ID:   host.ID.String(),
				Name: host.DisplayName,
			},
			Messages: make([]messageResponse, len(turns)),
		}
		for i, turn := range turns {
			resp.Messages[i] = messageResponse{
				ID:        turn.ID.String(),
				Role:      turn.Speaker.String(),
				Message:   turn.Text,
				CreatedAt: turn.CreatedAt,
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// getRecommendationsHandler returns freshly ranked recommendations
func getRecommendationsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type arcadeResponse struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		MemberCount int      `json:"memberCount"`
		PostCount   int      `json:"postCount"`
	}
	type recommendationResponse struct {
		ID         string         `json:"id"`
		Arcade     arcadeResponse `json:"arcade"`
		Reason     string         `json:"reason"`
		Confidence float64        `json:"confidence"`
	}
	type response struct {
		Recommendations []recommendationResponse `json:"recommendations"`
		Message         string                   `json:"message,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		results, message, err := uc.Recommend.Recommend(r.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound, "user not found")
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, "failed to build recommendations")
			return
		}

		resp := response{
			Recommendations: make([]recommendationResponse, len(results)),
			Message:         message,
		}
		for i, result := range results {
			tags := result.Arcade.Tags
			if tags == nil {
				tags = []string{}
			}
			resp.Recommendations[i] = recommendationResponse{
				ID: result.Recommendation.ID.String(),
				Arcade: arcadeResponse{
					ID:          result.Arcade.ID.String(),
					Name:        result.Arcade.Name,
					Description: result.Arcade.Description,
					Tags:        tags,
					MemberCount: result.Arcade.MemberCount,
					PostCount:   result.Arcade.PostCount,
				},
				Reason:     result.Recommendation.Reason,
				Confidence: result.Recommendation.Confidence,
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// postRecommendationActionHandler records a click or join reaction
func postRecommendationActionHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		RecommendationID string `json:"recommendationId"`
		Action           string `json:"action"`
	}
	type response struct {
		Success bool `json:"success"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid action request body"),
				http.StatusBadRequest, "recommendationId and action are required")
			return
		}
		if req.RecommendationID == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("missing recommendation ID"),
				http.StatusBadRequest, "recommendationId and action are required")
			return
		}
		if _, err := types.ParseRecommendationAction(req.Action); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest, "action must be click or join")
			return
		}

		err := uc.Recommend.RecordAction(r.Context(), id.UserID, types.RecommendationID(req.RecommendationID), req.Action)
		if err != nil {
			if errors.Is(err, usecase.ErrRecommendationNotFound) {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound, "recommendation not found")
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest, "failed to record action")
			return
		}

		writeJSON(w, http.StatusOK, response{Success: true})
	}
}

// getRecommendationHistoryHandler returns the user's recommendation ledger,
// newest first, including recorded click and join timestamps.
func getRecommendationHistoryHandler(uc *usecase.UseCases) http.HandlerFunc {
	type historyEntry struct {
		ID         string     `json:"id"`
		ArcadeID   string     `json:"arcadeId"`
		Reason     string     `json:"reason"`
		Confidence float64    `json:"confidence"`
		CreatedAt  time.Time  `json:"createdAt"`
		ClickedAt  *time.Time `json:"clickedAt,omitempty"`
		JoinedAt   *time.Time `json:"joinedAt,omitempty"`
	}
	type response struct {
		History []historyEntry `json:"history"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		records, err := uc.Recommend.ListHistory(r.Context(), id.UserID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, "failed to load recommendation history")
			return
		}

		resp := response{History: make([]historyEntry, len(records))}
		for i, rec := range records {
			resp.History[i] = historyEntry{
				ID:         rec.ID.String(),
				ArcadeID:   rec.ArcadeID.String(),
				Reason:     rec.Reason,
				Confidence: rec.Confidence,
				CreatedAt:  rec.CreatedAt,
				ClickedAt:  rec.ClickedAt,
				JoinedAt:   rec.JoinedAt,
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
