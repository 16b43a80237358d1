package directory

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// ListProfessorsHandler returns the faculty roster, optionally narrowed by a
// case-insensitive substring match on name or email (?search=).
func ListProfessorsHandler(w http.ResponseWriter, r *http.Request) {
	var professors []auth.Professor
	if err := db.DB.WithContext(r.Context()).Order("display_name").Find(&professors).Error; err != nil {
		http.Error(w, "Failed to load professors", http.StatusInternalServerError)
		return
	}

	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		fold := cases.Fold()
		needle := fold.String(search)
		filtered := professors[:0]
		for _, p := range professors {
			if strings.Contains(fold.String(p.DisplayName), needle) ||
				strings.Contains(fold.String(p.Email), needle) {
				filtered = append(filtered, p)
			}
		}
		professors = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(professors)
}

// UpdateStatusHandler toggles a professor between active and blocked. This
// is the only writer of the status field.
func UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Status != auth.StatusActive && input.Status != auth.StatusBlocked {
		http.Error(w, "Status must be 'active' or 'blocked'", http.StatusBadRequest)
		return
	}

	var prof auth.Professor
	err := db.DB.WithContext(r.Context()).First(&prof, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Professor not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load professor", http.StatusInternalServerError)
		return
	}

	if err := db.DB.WithContext(r.Context()).Model(&prof).Update("status", input.Status).Error; err != nil {
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}
