package web

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/Emazov/myach-pro-tier-list-backend/controller"
	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type playerRequest struct {
	TelegramID  int64  `json:"telegramId"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Number      int    `json:"number"`
	Description string `json:"description"`
	ReleaseID   int32  `json:"releaseId"`
	PhotoFileID int32  `json:"photoFileId"`
}

func listPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := ctrl.ListPlayers(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, players)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := ctrl.GetPlayer(r.Context(), idParam(r, "playerID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, player)
	}
}

func createPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		if !requireAdmin(ctrl, render, w, req.TelegramID) {
			return
		}
		if req.Name == "" || req.ReleaseID == 0 {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required fields missing: name, releaseId"})
			return
		}

		player, err := ctrl.CreatePlayer(r.Context(), &model.Player{
			Name:        req.Name,
			Position:    req.Position,
			Jersey:      req.Number,
			Description: req.Description,
			ReleaseID:   req.ReleaseID,
			PhotoFileID: req.PhotoFileID,
		})
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, player)
	}
}

func updatePlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		if !requireAdmin(ctrl, render, w, req.TelegramID) {
			return
		}

		player, err := ctrl.UpdatePlayer(r.Context(), &model.Player{
			ID:          idParam(r, "playerID"),
			Name:        req.Name,
			Position:    req.Position,
			Jersey:      req.Number,
			Description: req.Description,
			PhotoFileID: req.PhotoFileID,
		})
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, player)
	}
}

func deletePlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		if err := ctrl.DeletePlayer(r.Context(), idParam(r, "playerID")); err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

type releaseRequest struct {
	TelegramID  int64  `json:"telegramId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoFileID  int32  `json:"logoFileId"`
}

func listReleasesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		releases, err := ctrl.ListReleases(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, releases)
	}
}

func getReleaseHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		release, err := ctrl.GetRelease(r.Context(), idParam(r, "releaseID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, release)
	}
}

func releasePlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := ctrl.ListReleasePlayers(r.Context(), idParam(r, "releaseID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, players)
	}
}

func createReleaseHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req releaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		if !requireAdmin(ctrl, render, w, req.TelegramID) {
			return
		}
		if req.Name == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required field missing: name"})
			return
		}

		release, err := ctrl.CreateRelease(r.Context(), &model.Release{
			Name:        req.Name,
			Description: req.Description,
			LogoFileID:  req.LogoFileID,
		})
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, release)
	}
}

func updateReleaseHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req releaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		if !requireAdmin(ctrl, render, w, req.TelegramID) {
			return
		}

		release, err := ctrl.UpdateRelease(r.Context(), &model.Release{
			ID:          idParam(r, "releaseID"),
			Name:        req.Name,
			Description: req.Description,
			LogoFileID:  req.LogoFileID,
		})
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, release)
	}
}

func deleteReleaseHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		if err := ctrl.DeleteRelease(r.Context(), idParam(r, "releaseID")); err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func uploadFileHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "invalid multipart form"})
			return
		}

		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required form field missing: file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(render, w, err)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		uploaded, err := ctrl.UploadFile(r.Context(), data, header.Filename, contentType,
			r.FormValue("description"), 0)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, uploaded)
	}
}

func listFilesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		files, err := ctrl.ListFiles(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, files)
	}
}

func fileURLHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		url, err := ctrl.GetFileURL(r.Context(), key)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
	}
}

func userAvatarHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avatar, err := ctrl.UserAvatar(r.Context(), idParam(r, "userID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, avatar)
	}
}

// downloadFileHandler proxies the object's bytes through the backend.
func downloadFileHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, contentType, err := ctrl.DownloadFile(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		io.Copy(w, body)
	}
}

func deleteFileHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromQuery(r)
		if !ok {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "required parameter missing: telegramId"})
			return
		}
		if !requireAdmin(ctrl, render, w, telegramID) {
			return
		}

		if err := ctrl.DeleteFile(r.Context(), chi.URLParam(r, "key")); err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
