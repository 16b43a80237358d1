package auth

import (
	"log"
	"os"

	"github.com/LabTrack/LT-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&Professor{}, &AdminRole{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	if domain := os.Getenv("INSTITUTION_DOMAIN"); domain != "" {
		Domain = domain
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		log.Println("GOOGLE_CLIENT_ID is empty; Google sign-in is disabled")
		return
	}
	Verifier = NewGoogleVerifier(clientID, os.Getenv("GOOGLE_JWKS_URL"))
}
