package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the bootstrap admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Further admins are added by inserting rows into the admin
// roles table with a hash from the same cost.
func SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing auth.AdminRole
	err := db.DB.First(&existing, "email = ?", email).Error
	if err == nil {
		log.Printf("⚠️ Admin exists, skipping: %s", email)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("DB error on admin %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	userID := os.Getenv("ADMIN_USER_ID")
	if userID == "" {
		userID = utils.GenerateUUID()
	}

	if err := db.DB.Create(&auth.AdminRole{
		UserID:       userID,
		Email:        email,
		PasswordHash: string(hash),
	}).Error; err != nil {
		return fmt.Errorf("failed to create admin %s: %w", email, err)
	}

	log.Printf("✅ Seeded admin %s", email)
	return nil
}
