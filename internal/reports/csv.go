package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/LabTrack/LT-Backend/internal/labs"
)

const csvTimeFormat = "2006-01-02 15:04"

// WriteCSV renders logs as the export format the admin dashboard downloads:
// a header row then one row per log, every field quoted. Open sessions have
// an empty check-out and duration and a status of Active.
func WriteCSV(w io.Writer, logs []labs.UsageLog) error {
	if _, err := io.WriteString(w, `"Professor","Room","Check-In","Check-Out","Duration (min)","Status"`+"\n"); err != nil {
		return err
	}

	for _, log := range logs {
		checkOut := ""
		duration := ""
		status := "Active"
		if log.CheckOut != nil {
			checkOut = log.CheckOut.Format(csvTimeFormat)
			status = "Closed"
		}
		if log.Duration != nil {
			duration = fmt.Sprintf("%d", *log.Duration)
		}

		row := []string{
			log.ProfessorName,
			log.RoomNumber,
			log.CheckIn.Format(csvTimeFormat),
			checkOut,
			duration,
			status,
		}
		for i, field := range row {
			row[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := io.WriteString(w, strings.Join(row, ",")+"\n"); err != nil {
			return err
		}
	}

	return nil
}
