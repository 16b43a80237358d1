package reports

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/LabTrack/LT-Backend/internal/labs"
	"golang.org/x/text/cases"
)

// Date-range presets for the log table. Custom requires From and To.
const (
	PresetAll    = "all"
	PresetToday  = "today"
	PresetWeek   = "week"
	PresetMonth  = "month"
	PresetCustom = "custom"
)

// Filter narrows the log set. Predicates compose as AND: a log must match
// the name search, the room, and the date range to survive. Zero values
// disable a predicate (empty Search, Room of "" or "all", Preset of "" or
// "all").
type Filter struct {
	Search string
	Room   string
	Preset string
	From   time.Time
	To     time.Time
}

// FilterFromQuery builds a Filter from request query parameters: search,
// room, range, from, to. Dates are yyyy-mm-dd. A custom range without both
// bounds, or with to before from, is an error.
func FilterFromQuery(q url.Values) (Filter, error) {
	f := Filter{
		Search: strings.TrimSpace(q.Get("search")),
		Room:   strings.TrimSpace(q.Get("room")),
		Preset: strings.TrimSpace(q.Get("range")),
	}

	switch f.Preset {
	case "", PresetAll, PresetToday, PresetWeek, PresetMonth:
	case PresetCustom:
		from, err := time.Parse("2006-01-02", q.Get("from"))
		if err != nil {
			return Filter{}, fmt.Errorf("invalid 'from' date: %w", err)
		}
		to, err := time.Parse("2006-01-02", q.Get("to"))
		if err != nil {
			return Filter{}, fmt.Errorf("invalid 'to' date: %w", err)
		}
		if to.Before(from) {
			return Filter{}, fmt.Errorf("'to' date precedes 'from' date")
		}
		f.From = from
		f.To = to
	default:
		return Filter{}, fmt.Errorf("unknown range %q", f.Preset)
	}

	return f, nil
}

// Matches reports whether a single log passes every active predicate. The
// date range is evaluated against the check-in time in now's location.
func (f Filter) Matches(log labs.UsageLog, now time.Time) bool {
	if f.Search != "" {
		fold := cases.Fold()
		if !strings.Contains(fold.String(log.ProfessorName), fold.String(f.Search)) {
			return false
		}
	}
	if f.Room != "" && f.Room != "all" && log.RoomNumber != f.Room {
		return false
	}
	return f.inRange(log.CheckIn, now)
}

// Apply filters a slice in order, reusing the backing array.
func (f Filter) Apply(logs []labs.UsageLog, now time.Time) []labs.UsageLog {
	filtered := logs[:0]
	for _, log := range logs {
		if f.Matches(log, now) {
			filtered = append(filtered, log)
		}
	}
	return filtered
}

func (f Filter) inRange(checkIn, now time.Time) bool {
	loc := now.Location()
	checkIn = checkIn.In(loc)

	switch f.Preset {
	case "", PresetAll:
		return true
	case PresetToday:
		start := startOfDay(now)
		return !checkIn.Before(start) && checkIn.Before(start.AddDate(0, 0, 1))
	case PresetWeek:
		start := startOfWeek(now)
		return !checkIn.Before(start) && checkIn.Before(start.AddDate(0, 0, 7))
	case PresetMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return !checkIn.Before(start) && checkIn.Before(start.AddDate(0, 1, 0))
	case PresetCustom:
		from := time.Date(f.From.Year(), f.From.Month(), f.From.Day(), 0, 0, 0, 0, loc)
		// Inclusive of the full last day.
		to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		return !checkIn.Before(from) && checkIn.Before(to)
	default:
		return false
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
