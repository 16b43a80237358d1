package insights

import (
	"log"
	"os"
	"time"

	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "insights"); err != nil {
		log.Fatal("Failed to ensure schema insights: ", err)
	}

	if err := db.DB.AutoMigrate(&Digest{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	// One model call per 10s with a small burst covers a dashboard of admins
	// without letting a refresh loop burn through the quota.
	limiter = rate.NewLimiter(rate.Every(10*time.Second), 3)

	cfg := LoadFromEnv()
	cacheTTL = cfg.CacheTTL
	if err := cfg.Validate(); err != nil {
		log.Println("GEMINI_API_KEY is empty; usage digest is disabled")
		return
	}
	summarizer = NewClient(cfg)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Println("Digest cache enabled at", addr)
	}
}
