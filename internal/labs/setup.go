package labs

import (
	"log"

	"github.com/LabTrack/LT-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "labs"); err != nil {
		log.Fatal("Failed to ensure schema labs: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(&UsageLog{}, &Room{}); err != nil {
		log.Fatal("Failed to auto-migrate labs tables: ", err)
	}

	// Backstop for the one-open-session invariant: even a write path that
	// skips the service cannot open a second session for a professor.
	if err := db.DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_session_per_professor
		ON labs.usage_logs (professor_id)
		WHERE check_out IS NULL;
	`).Error; err != nil {
		log.Fatal("Failed to create idx_one_open_session_per_professor: ", err)
	}

	service = NewService(NewGormStore(db.DB))
	log.Println("Labs module initialized")
}
