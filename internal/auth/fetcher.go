package auth

import (
	"context"
	"errors"

	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// RoleInfo implements middleware.RoleFetcher against the admin registry.
type RoleInfo struct{}

func (ri RoleInfo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var role AdminRole
	err := db.DB.WithContext(ctx).First(&role, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ProfessorByID fetches a single professor profile.
func ProfessorByID(ctx context.Context, userID string) (*Professor, error) {
	var prof Professor
	if err := db.DB.WithContext(ctx).First(&prof, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

// UpsertProfessor creates the profile on first sign-in and refreshes the
// provider-sourced fields on later sign-ins. Status is never touched here,
// so a blocked professor stays blocked across sign-ins.
func UpsertProfessor(ctx context.Context, userID, email, displayName, photoURL string) error {
	prof := Professor{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        "professor",
		Status:      StatusActive,
	}
	return db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "photo_url", "updated_at"}),
	}).Create(&prof).Error
}
