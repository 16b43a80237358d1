package main

import (
	"log"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/labs"
	"github.com/LabTrack/LT-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	// Migrations run here too so the seeder works against a fresh database.
	auth.Init()
	labs.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
