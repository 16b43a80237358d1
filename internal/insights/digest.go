package insights

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/LabTrack/LT-Backend/internal/labs"
)

// Fixed user-facing strings. These never vary with the underlying error.
const (
	noDataMessage      = "There is no laboratory usage data to summarize."
	invalidDataMessage = "Invalid laboratory usage data provided."
	failureMessage     = "Failed to generate summary. Please try again later."
)

const instruction = `You are an AI assistant helping summarize laboratory usage data.
  Your goal is to provide a brief text summary of the laboratory's peak hours and most frequent users based on the data provided.
  If the usage data is empty, respond with a message indicating that there is no usage data to summarize.`

type usageRow struct {
	Professor string `json:"professor"`
	Room      string `json:"room"`
	Timestamp string `json:"timestamp"`
	Duration  *int   `json:"duration"`
}

// BuildPayload serializes logs into the compact JSON form the model is
// prompted with. Timestamps are ISO 8601 in UTC.
func BuildPayload(logs []labs.UsageLog) (string, error) {
	rows := make([]usageRow, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, usageRow{
			Professor: log.ProfessorName,
			Room:      log.RoomNumber,
			Timestamp: log.CheckIn.UTC().Format(time.RFC3339),
			Duration:  log.Duration,
		})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GenerateSummary produces the digest text for a log set. An empty set or an
// unparseable payload short-circuits with a fixed message before any network
// call; a remote failure maps to a fixed failure string. The returned text is
// always safe to show a user, but only ok results are real digests; fixed
// messages are transient notifications and must not be persisted or cached.
func GenerateSummary(ctx context.Context, s Summarizer, logs []labs.UsageLog) (string, bool) {
	if len(logs) == 0 {
		return noDataMessage, false
	}

	payload, err := BuildPayload(logs)
	if err != nil || !json.Valid([]byte(payload)) {
		logError("payload", err)
		return invalidDataMessage, false
	}

	summary, err := s.Summarize(ctx, instruction, payload)
	if err != nil {
		return failureMessage, false
	}
	return summary, true
}

// Paragraphs splits summary text on newlines for display, dropping blanks.
func Paragraphs(summary string) []string {
	var paragraphs []string
	for _, line := range strings.Split(summary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}
