package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/unrolled/render"

	"github.com/Emazov/myach-pro-tier-list-backend/controller"
	"github.com/Emazov/myach-pro-tier-list-backend/db"
)

type apiError struct {
	Error string `json:"error"`
}

// writeError maps the db sentinel errors to status codes. Anything
// unrecognized gets logged in full and surfaces as a generic 500.
func writeError(render *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, db.ErrCategoryNotFound),
		errors.Is(err, db.ErrReleaseNotFound),
		errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrFileNotFound):
		render.JSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	case errors.Is(err, db.ErrCategoryFull), errors.Is(err, db.ErrReleaseFull):
		render.JSON(w, http.StatusConflict, apiError{Error: err.Error()})
	default:
		log.Printf("unexpected error handling request: %v", err)
		render.JSON(w, http.StatusInternalServerError, apiError{Error: "internal server error"})
	}
}

// telegramIDFromQuery reads the required telegramId query parameter.
func telegramIDFromQuery(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("telegramId"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func idParam(r *http.Request, name string) int32 {
	id, _ := strconv.Atoi(chi.URLParam(r, name))
	return int32(id)
}

// releaseIDFromQuery reads the optional releaseId filter, 0 when absent.
func releaseIDFromQuery(r *http.Request) int32 {
	id, _ := strconv.Atoi(r.URL.Query().Get("releaseId"))
	return int32(id)
}

// requireAdmin enforces the single-admin policy. Returns false after writing
// the response when the caller is not the configured admin.
func requireAdmin(ctrl controller.C, render *render.Render, w http.ResponseWriter, telegramID int64) bool {
	if !ctrl.IsAdmin(telegramID) {
		render.JSON(w, http.StatusForbidden, apiError{Error: "access denied: administrator only"})
		return false
	}
	return true
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type submitVoteRequest struct {
	TelegramID int64 `json:"telegramId"`
	PlayerID   int32 `json:"playerId"`
	CategoryID int32 `json:"categoryId"`
}

func submitVoteHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitVoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		if req.TelegramID == 0 || req.PlayerID == 0 || req.CategoryID == 0 {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required fields missing: telegramId, playerId, categoryId"})
			return
		}

		vote, err := ctrl.SubmitVote(r.Context(), req.TelegramID, req.PlayerID, req.CategoryID)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, vote)
	}
}

func allVotesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		votes, err := ctrl.AllVotes(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, votes)
	}
}

func playersForVotingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}

		players, err := ctrl.ListPlayersForVoting(r.Context(), telegramID, releaseIDFromQuery(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, players)
	}
}

func nextPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}

		player, err := ctrl.NextPlayerForVoting(r.Context(), telegramID, releaseIDFromQuery(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		if player == nil {
			render.JSON(w, http.StatusNotFound, apiError{Error: "no players left to vote on"})
			return
		}
		render.JSON(w, http.StatusOK, player)
	}
}

func userStatsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}

		stats, err := ctrl.UserVotingStats(r.Context(), telegramID)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

func listCategoriesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := ctrl.ListCategories(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, categories)
	}
}

func getCategoryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := ctrl.GetCategory(r.Context(), idParam(r, "categoryID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, category)
	}
}

func categoryStatsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		stats, err := ctrl.CategoryStatistics(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

func votingResultsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := ctrl.VotingResults(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, results)
	}
}

func listUsersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		users, err := ctrl.ListUsers(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, users)
	}
}

func getUserHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctrl.GetUser(r.Context(), idParam(r, "userID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, user)
	}
}

func telegramWebhookHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid update payload"})
			return
		}

		if err := ctrl.HandleTelegramUpdate(r.Context(), &update); err != nil {
			// Telegram retries on non-200, so log and acknowledge anyway.
			log.Printf("error handling telegram update: %v", err)
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
