package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/LabTrack/LT-Backend/internal/utils"
)

type SessionFetcher interface {
	FindSessionByID(id string) (utils.SessionData, error)
}

// RoleFetcher resolves admin membership for a signed-in user. Admin-ness is
// presence in a separate registry, not a column on the professor profile.
type RoleFetcher interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

func SessionMiddleware(fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err != nil {
				http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
				return
			}

			session, err := fetcher.FindSessionByID(cookie.Value)
			if err != nil {
				http.Error(w, "Couldn't find session", http.StatusUnauthorized)
				return
			}

			if session.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Session expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextUserIDKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// redirectForbidden tells the client which page the user actually belongs
// on. Role mismatches navigate to the correct home, not to an error page.
func redirectForbidden(w http.ResponseWriter, message, home string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    message,
		"redirect": home,
	})
}

// AdminMiddleware allows only users present in the admin registry.
// Professors hitting an admin page are pointed back to /professor.
func AdminMiddleware(roles RoleFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
				return
			}

			admin, err := roles.IsAdmin(r.Context(), userID)
			if err != nil {
				http.Error(w, "Failed to resolve role", http.StatusInternalServerError)
				return
			}
			if !admin {
				redirectForbidden(w, "admin access required", "/professor")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ProfessorMiddleware is the inverse gate: admins visiting professor-only
// pages are pointed to /admin.
func ProfessorMiddleware(roles RoleFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
				return
			}

			admin, err := roles.IsAdmin(r.Context(), userID)
			if err != nil {
				http.Error(w, "Failed to resolve role", http.StatusInternalServerError)
				return
			}
			if admin {
				redirectForbidden(w, "professor access required", "/admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var allowed = map[string]struct{}{
	"http://localhost:3000":           {},
	"http://localhost:9002":           {},
	"https://labtrack.neu.edu.ph":     {},
	"https://labtrack-dev.neu.edu.ph": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
