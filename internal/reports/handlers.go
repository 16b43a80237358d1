package reports

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/labs"
)

func fetchLogs(r *http.Request) ([]labs.UsageLog, error) {
	var logs []labs.UsageLog
	err := db.DB.WithContext(r.Context()).Order("check_in DESC").Find(&logs).Error
	return logs, err
}

// LogsHandler returns the full log table, narrowed by the query filters
// (?search=, ?room=, ?range=, ?from=, ?to=). Filtering happens in memory
// over the fetched set.
func LogsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := FilterFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := fetchLogs(r)
	if err != nil {
		http.Error(w, "Failed to load usage logs", http.StatusInternalServerError)
		return
	}
	logs = filter.Apply(logs, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// ExportHandler streams the filtered log table as a CSV download stamped with
// the export date.
func ExportHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := FilterFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := fetchLogs(r)
	if err != nil {
		http.Error(w, "Failed to load usage logs", http.StatusInternalServerError)
		return
	}
	logs = filter.Apply(logs, time.Now())

	filename := fmt.Sprintf("lab-usage-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := WriteCSV(w, logs); err != nil {
		// Headers are already sent; nothing left to do but note it.
		log.Println("Error streaming CSV export:", err)
	}
}

// Stats backs the admin dashboard cards.
type Stats struct {
	UsageToday     int    `json:"usage_today"`
	ActiveSessions int    `json:"active_sessions"`
	MostActiveRoom string `json:"most_active_room"`
	FacultyTotal   int    `json:"faculty_total"`
}

// StatsHandler computes the dashboard cards. Logs and professors have no
// ordering dependency, so the two fetches run concurrently.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	type logsResult struct {
		logs []labs.UsageLog
		err  error
	}
	type profsResult struct {
		count int64
		err   error
	}

	logsCh := make(chan logsResult, 1)
	profsCh := make(chan profsResult, 1)

	go func() {
		logs, err := fetchLogs(r)
		logsCh <- logsResult{logs, err}
	}()
	go func() {
		var count int64
		err := db.DB.WithContext(r.Context()).Model(&auth.Professor{}).Count(&count).Error
		profsCh <- profsResult{count, err}
	}()

	lr := <-logsCh
	pr := <-profsCh
	if lr.err != nil || pr.err != nil {
		http.Error(w, "Failed to load dashboard stats", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	today := startOfDay(now)
	roomCounts := make(map[string]int)
	stats := Stats{FacultyTotal: int(pr.count)}
	for _, log := range lr.logs {
		if log.CheckOut == nil {
			stats.ActiveSessions++
		}
		if !log.CheckIn.In(now.Location()).Before(today) {
			stats.UsageToday++
		}
		roomCounts[log.RoomNumber]++
	}
	best := 0
	for room, n := range roomCounts {
		if n > best || (n == best && room < stats.MostActiveRoom) {
			best = n
			stats.MostActiveRoom = room
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
