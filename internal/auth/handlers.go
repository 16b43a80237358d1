package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 6 * time.Hour

// Verifier and Domain are configured in Init from the environment.
var (
	Verifier TokenVerifier
	Domain   = "neu.edu.ph"
)

// institutionalEmail re-validates the email suffix after sign-in. The
// provider already restricts the prompt to the hosted domain; this is
// defense in depth against a token from elsewhere.
func institutionalEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+Domain)
}

func deniedMessage() string {
	return fmt.Sprintf("Only @%s institutional emails are allowed.", Domain)
}

// issueSession writes the session cookie and upserts the session row.
// One session per user: signing in again replaces the previous session.
func issueSession(w http.ResponseWriter, userID string) error {
	id := utils.GenerateUUID()
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})

	var existing Session
	err := db.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return db.DB.Model(&existing).Updates(Session{
			SessionID: id,
			ExpiresAt: time.Now().Add(sessionTTL),
		}).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.DB.Create(&Session{
		SessionID: id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}).Error
}

type loginResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Home        string `json:"home"`
}

// GoogleLoginHandler exchanges a Google ID token for a session cookie.
// First-time professors get a profile; admins are recognized by presence in
// the admin registry and never get a professor profile.
func GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IDToken == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if Verifier == nil {
		http.Error(w, "Sign-in is not configured", http.StatusServiceUnavailable)
		return
	}

	claims, err := Verifier.Verify(r.Context(), input.IDToken)
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	if !institutionalEmail(claims.Email) {
		// No session exists yet, so rejecting here is the forced sign-out.
		http.Error(w, deniedMessage(), http.StatusForbidden)
		return
	}

	admin, err := RoleInfo{}.IsAdmin(r.Context(), claims.Subject)
	if err != nil {
		http.Error(w, "Failed to resolve role", http.StatusInternalServerError)
		return
	}

	displayName := claims.Name
	if displayName == "" {
		displayName = claims.Email
	}

	role, home := "professor", "/professor"
	if admin {
		role, home = "admin", "/admin"
	} else {
		if err := UpsertProfessor(r.Context(), claims.Subject, claims.Email, displayName, claims.Picture); err != nil {
			http.Error(w, "Failed to create profile", http.StatusInternalServerError)
			return
		}
	}

	if err := issueSession(w, claims.Subject); err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		UserID:      claims.Subject,
		DisplayName: displayName,
		Email:       claims.Email,
		Role:        role,
		Home:        home,
	})
}

// AdminLoginHandler is the bootstrap password login for admin accounts
// seeded with cmd/seed, for use before Google sign-in is configured.
func AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	var role AdminRole
	if err := db.DB.First(&role, "email = ?", input.Email).Error; err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}
	if role.PasswordHash == "" {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(role.PasswordHash), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	if err := issueSession(w, role.UserID); err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		UserID: role.UserID,
		Email:  role.Email,
		Role:   "admin",
		Home:   "/admin",
	})
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	var session Session
	if err := db.DB.First(&session, "session_id = ?", cookie.Value).Error; err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}
	db.DB.Delete(&session)

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: 0,
		Path:   "/",
	})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type meResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status,omitempty"`
	Home        string `json:"home"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	admin, err := RoleInfo{}.IsAdmin(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to resolve role", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if admin {
		var role AdminRole
		if err := db.DB.WithContext(r.Context()).First(&role, "user_id = ?", userID).Error; err != nil {
			http.Error(w, "Couldn't find user", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(meResponse{
			UserID: role.UserID,
			Email:  role.Email,
			Role:   "admin",
			Home:   "/admin",
		})
		return
	}

	prof, err := ProfessorByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(meResponse{
		UserID:      prof.UserID,
		DisplayName: prof.DisplayName,
		Email:       prof.Email,
		PhotoURL:    prof.PhotoURL,
		Role:        "professor",
		Status:      prof.Status,
		Home:        "/professor",
	})
}
