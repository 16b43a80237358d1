package reports

import (
	"net/url"
	"testing"
	"time"

	"github.com/LabTrack/LT-Backend/internal/labs"
)

func makeLog(name, room string, checkIn time.Time) labs.UsageLog {
	return labs.UsageLog{
		ProfessorName: name,
		RoomNumber:    room,
		CheckIn:       checkIn,
	}
}

func TestFilter_RoomComposesWithAllDefaults(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	logs := []labs.UsageLog{
		makeLog("Prof One", "101", now.Add(-time.Hour)),
		makeLog("Prof Two", "204", now.Add(-time.Hour)),
	}

	f := Filter{Room: "101", Preset: PresetAll}
	filtered := f.Apply(append([]labs.UsageLog(nil), logs...), now)
	if len(filtered) != 1 {
		t.Fatalf("expected one log, got %d", len(filtered))
	}
	if filtered[0].RoomNumber != "101" {
		t.Errorf("expected the 101 entry, got room %q", filtered[0].RoomNumber)
	}

	// "all" disables the room predicate entirely.
	f = Filter{Room: "all"}
	if filtered := f.Apply(append([]labs.UsageLog(nil), logs...), now); len(filtered) != 2 {
		t.Errorf("expected room=all to pass everything, got %d", len(filtered))
	}
}

func TestFilter_SearchFoldsCase(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	log := makeLog("Søren García", "101", now)

	for _, search := range []string{"søren", "SØREN", "garcía", "GARCÍA", "ren gar"} {
		f := Filter{Search: search}
		if !f.Matches(log, now) {
			t.Errorf("expected search %q to match %q", search, log.ProfessorName)
		}
	}
	if (Filter{Search: "nobody"}).Matches(log, now) {
		t.Error("expected non-matching search to reject")
	}
}

func TestFilter_DatePresets(t *testing.T) {
	// A Wednesday. The week preset starts on the preceding Monday.
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		preset  string
		checkIn time.Time
		want    bool
	}{
		{"today includes this morning", PresetToday, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), true},
		{"today excludes yesterday", PresetToday, time.Date(2026, 3, 3, 23, 59, 0, 0, time.UTC), false},
		{"week includes monday", PresetWeek, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{"week excludes sunday before", PresetWeek, time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC), false},
		{"month includes the 1st", PresetMonth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"month excludes february", PresetMonth, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), false},
		{"all passes ancient logs", PresetAll, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Filter{Preset: tc.preset}
			if got := f.Matches(makeLog("P", "101", tc.checkIn), now); got != tc.want {
				t.Errorf("preset %s with check-in %v: got %v, want %v", tc.preset, tc.checkIn, got, tc.want)
			}
		})
	}
}

func TestFilter_CustomRangeInclusiveOfBothDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := Filter{
		Preset: PresetCustom,
		From:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		checkIn time.Time
		want    bool
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC), true}, // last day, full day
		{time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC), false},
		{time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := f.Matches(makeLog("P", "101", tc.checkIn), now); got != tc.want {
			t.Errorf("check-in %v: got %v, want %v", tc.checkIn, got, tc.want)
		}
	}
}

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("search", "  garcia ")
	q.Set("room", "204")
	q.Set("range", "custom")
	q.Set("from", "2026-03-02")
	q.Set("to", "2026-03-04")

	f, err := FilterFromQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Search != "garcia" || f.Room != "204" || f.Preset != PresetCustom {
		t.Errorf("unexpected filter: %+v", f)
	}
	if f.From.Day() != 2 || f.To.Day() != 4 {
		t.Errorf("unexpected date bounds: %v .. %v", f.From, f.To)
	}

	bad := []url.Values{
		{"range": {"custom"}},                                        // missing bounds
		{"range": {"custom"}, "from": {"2026-03-04"}, "to": {"2026-03-02"}}, // inverted
		{"range": {"fortnight"}},                                     // unknown preset
		{"range": {"custom"}, "from": {"03/02/2026"}, "to": {"2026-03-04"}}, // bad format
	}
	for _, q := range bad {
		if _, err := FilterFromQuery(q); err == nil {
			t.Errorf("expected error for query %v", q)
		}
	}
}
