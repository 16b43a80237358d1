package insights

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/labs"
	"github.com/LabTrack/LT-Backend/internal/utils"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var (
	summarizer Summarizer
	limiter    *rate.Limiter
	cache      *redis.Client
	cacheTTL   time.Duration
)

const cacheKey = "insights:digest"

type digestResponse struct {
	Summary    string    `json:"summary"`
	Paragraphs []string  `json:"paragraphs"`
	LogCount   int       `json:"log_count"`
	CreatedAt  time.Time `json:"created_at"`
	Cached     bool      `json:"cached"`
}

// SummaryHandler generates a fresh usage digest over the full log set. Model
// calls are rate-limited and the last digest is served from cache while it is
// fresh; ?refresh=true bypasses the cache.
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if summarizer == nil {
		http.Error(w, "Usage digest is not configured", http.StatusServiceUnavailable)
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"
	if cache != nil && !refresh {
		if raw, err := cache.Get(r.Context(), cacheKey).Result(); err == nil {
			var resp digestResponse
			if json.Unmarshal([]byte(raw), &resp) == nil {
				resp.Cached = true
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(resp)
				return
			}
		} else if err != redis.Nil {
			log.Println("Digest cache read failed: ", err)
		}
	}

	if !limiter.Allow() {
		http.Error(w, "Too many digest requests, try again shortly", http.StatusTooManyRequests)
		return
	}

	var logs []labs.UsageLog
	if err := db.DB.WithContext(r.Context()).Order("check_in DESC").Find(&logs).Error; err != nil {
		http.Error(w, "Failed to load usage logs", http.StatusInternalServerError)
		return
	}

	summary, ok := GenerateSummary(r.Context(), summarizer, logs)
	if !ok {
		// A fixed no-data/failure notification, not a digest: show it but
		// keep it out of the history table and the cache.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(digestResponse{
			Summary:    summary,
			Paragraphs: Paragraphs(summary),
			LogCount:   len(logs),
		})
		return
	}

	digest := Digest{
		Summary:    summary,
		Paragraphs: Paragraphs(summary),
		LogCount:   len(logs),
		CreatedBy:  userID,
	}
	if err := db.DB.WithContext(r.Context()).Create(&digest).Error; err != nil {
		// The summary was already generated; still return it.
		log.Println("Failed to persist digest: ", err)
	}

	resp := digestResponse{
		Summary:    digest.Summary,
		Paragraphs: digest.Paragraphs,
		LogCount:   digest.LogCount,
		CreatedAt:  digest.CreatedAt,
	}
	if cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := cache.Set(r.Context(), cacheKey, raw, cacheTTL).Err(); err != nil {
				log.Println("Digest cache write failed: ", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HistoryHandler lists recent digests, newest first.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	var digests []Digest
	if err := db.DB.WithContext(r.Context()).Order("created_at DESC").Limit(20).Find(&digests).Error; err != nil {
		http.Error(w, "Failed to load digest history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(digests)
}
