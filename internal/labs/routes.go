package labs

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

		r.Get("/rooms", ListRoomsHandler)

		// Professor-only lifecycle surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.ProfessorMiddleware(auth.RoleInfo{}))

			r.Post("/checkin", CheckInHandler)
			r.Post("/checkout", CheckOutHandler)
			r.Get("/session", ActiveSessionHandler)
			r.Get("/history", HistoryHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(auth.RoleInfo{}))

			r.Post("/rooms", CreateRoomHandler)
		})
	})

	return r
}
