package reports

import (
	"net/http"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(auth.RoleInfo{}))

		r.Get("/logs", LogsHandler)
		r.Get("/export", ExportHandler)
		r.Get("/stats", StatsHandler)
	})

	return r
}
