package directory

import (
	"net/http"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	// The roster and the block toggle are admin-only surfaces.
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(auth.RoleInfo{}))

		r.Get("/professors", ListProfessorsHandler)
		r.Patch("/professors/{user_id}/status", UpdateStatusHandler)
	})

	return r
}
