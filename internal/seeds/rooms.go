package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/labs"
	"github.com/goccy/go-yaml"
	"gorm.io/gorm"
)

type roomSeed struct {
	Name     string `yaml:"name"`
	Building string `yaml:"building"`
	QRCode   string `yaml:"qr_code"`
}

// SeedRooms loads the room registry from the YAML file. Existing rooms are
// skipped, so re-running after adding new rooms is safe.
func SeedRooms() error {
	path := os.Getenv("ROOMS_FILE")
	if path == "" {
		path = "internal/seeds/data/rooms.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	var rooms []roomSeed
	if err := yaml.Unmarshal(file, &rooms); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	created := 0
	for _, room := range rooms {
		var existing labs.Room
		err := db.DB.First(&existing, "name = ?", room.Name).Error

		if err == nil {
			log.Printf("⚠️ Room exists, skipping: %s", room.Name)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on room %s: %w", room.Name, err)
		}

		if err := db.DB.Create(&labs.Room{
			Name:     room.Name,
			Building: room.Building,
			QRCode:   room.QRCode,
		}).Error; err != nil {
			return fmt.Errorf("failed to create room %s: %w", room.Name, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d rooms (%d new)", len(rooms), created)
	return nil
}
