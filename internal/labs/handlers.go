package labs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/utils"
)

// service is the package-wide lifecycle service, wired in Init().
var service *Service

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CheckInHandler handles POST /labs/checkin with {"room_number": "204"}.
// A duplicate check-in answers 409 with the session that is already open.
func CheckInHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var input struct {
		RoomNumber string `json:"room_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log, err := service.CheckIn(r.Context(), userID, "", input.RoomNumber)
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "Room number is required", http.StatusBadRequest)
	case errors.Is(err, ErrAccessDenied):
		http.Error(w, "Your laboratory access has been revoked. Contact an administrator.", http.StatusForbidden)
	case errors.Is(err, ErrSessionAlreadyActive):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":          "You already have an active session. Check out first.",
			"active_session": log,
		})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Professor profile not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, "Check-in failed", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusCreated, log)
	}
}

// CheckOutHandler handles POST /labs/checkout with {"log_id": "..."}.
func CheckOutHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var input struct {
		LogID string `json:"log_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.LogID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log, err := service.CheckOut(r.Context(), userID, input.LogID)
	switch {
	case errors.Is(err, ErrAlreadyClosed):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": "Session is already closed.",
			"log":   log,
		})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Log not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, "Check-out failed", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, log)
	}
}

// ActiveSessionHandler returns the caller's open session, or null.
func ActiveSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	log, err := service.ActiveSession(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load active session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// HistoryHandler returns the caller's sessions, newest first.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	logs, err := service.History(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// ListRoomsHandler feeds the manual-entry room dropdown.
func ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	var rooms []Room
	if err := db.DB.WithContext(r.Context()).Order("name").Find(&rooms).Error; err != nil {
		http.Error(w, "Failed to load rooms", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// CreateRoomHandler registers a room placard (admin only).
func CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Building string `json:"building"`
		QRCode   string `json:"qr_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Room name is required", http.StatusBadRequest)
		return
	}

	room := Room{Name: input.Name, Building: input.Building, QRCode: input.QRCode}
	if err := db.DB.WithContext(r.Context()).Create(&room).Error; err != nil {
		http.Error(w, "Failed to create room", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}
