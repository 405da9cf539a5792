package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/Emazov/myach-pro-tier-list-backend/controller"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(render))

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", submitVoteHandler(ctrl, render))
			r.Get("/", allVotesHandler(ctrl, render)) // admin only
			r.Get("/players", playersForVotingHandler(ctrl, render))
			r.Get("/players/next", nextPlayerHandler(ctrl, render))
			r.Get("/user-stats", userStatsHandler(ctrl, render))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", listCategoriesHandler(ctrl, render))
			r.Get("/stats", categoryStatsHandler(ctrl, render)) // admin only
			r.Get("/results", votingResultsHandler(ctrl, render))
			r.Get("/{categoryID:\\d+}", getCategoryHandler(ctrl, render))
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", listPlayersHandler(ctrl, render))
			r.Post("/", createPlayerHandler(ctrl, render)) // admin only
			r.Get("/{playerID:\\d+}", getPlayerHandler(ctrl, render))
			r.Put("/{playerID:\\d+}", updatePlayerHandler(ctrl, render))    // admin only
			r.Delete("/{playerID:\\d+}", deletePlayerHandler(ctrl, render)) // admin only
		})

		r.Route("/releases", func(r chi.Router) {
			r.Get("/", listReleasesHandler(ctrl, render))
			r.Post("/", createReleaseHandler(ctrl, render)) // admin only
			r.Get("/{releaseID:\\d+}", getReleaseHandler(ctrl, render))
			r.Get("/{releaseID:\\d+}/players", releasePlayersHandler(ctrl, render))
			r.Put("/{releaseID:\\d+}", updateReleaseHandler(ctrl, render))    // admin only
			r.Delete("/{releaseID:\\d+}", deleteReleaseHandler(ctrl, render)) // admin only
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", uploadFileHandler(ctrl, render)) // admin only
			r.Get("/", listFilesHandler(ctrl, render))         // admin only
			r.Get("/url/{key}", fileURLHandler(ctrl, render))
			r.Get("/user-avatar/{userID:\\d+}", userAvatarHandler(ctrl, render))
			r.Get("/{key}", downloadFileHandler(ctrl, render))
			r.Delete("/{key}", deleteFileHandler(ctrl, render)) // admin only
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", listUsersHandler(ctrl, render)) // admin only
			r.Get("/{userID:\\d+}", getUserHandler(ctrl, render))
		})

		r.Post("/telegram/webhook", telegramWebhookHandler(ctrl, render))
	})

	return r
}
