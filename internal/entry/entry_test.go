package entry

import (
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestOverlapSeconds_UnboundedEqualsDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(90 * time.Minute)
	e := TimeEntry{Start: start, End: tp(end)}

	got := OverlapSeconds(e, Window{}, time.Now())
	if got != 90*60 {
		t.Errorf("expected %d seconds, got %d", 90*60, got)
	}
}

func TestOverlapSeconds_OpenEntryUsesNow(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := start.Add(10 * time.Minute)
	e := TimeEntry{Start: start}

	got := OverlapSeconds(e, Window{}, now)
	if got != 10*60 {
		t.Errorf("expected %d seconds, got %d", 10*60, got)
	}
}

func TestOverlapSeconds_WindowClamps(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour)
	e := TimeEntry{Start: start, End: tp(end)}

	winStart := start.Add(30 * time.Minute)
	winEnd := start.Add(90 * time.Minute)

	got := OverlapSeconds(e, Window{Start: tp(winStart), End: tp(winEnd)}, time.Now())
	if got != 60*60 {
		t.Errorf("expected %d seconds, got %d", 60*60, got)
	}
}

func TestOverlapSeconds_DisjointWindowIsZero(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	e := TimeEntry{Start: start, End: tp(end)}

	winStart := end.Add(time.Hour)
	got := OverlapSeconds(e, Window{Start: tp(winStart)}, time.Now())
	if got != 0 {
		t.Errorf("expected 0 seconds for disjoint window, got %d", got)
	}
}

func TestOverlapSeconds_InvertedWindowIsZero(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	e := TimeEntry{Start: start, End: tp(end)}

	winStart := start.Add(50 * time.Minute)
	winEnd := start.Add(10 * time.Minute)
	got := OverlapSeconds(e, Window{Start: tp(winStart), End: tp(winEnd)}, time.Now())
	if got != 0 {
		t.Errorf("expected 0 seconds for inverted window, got %d", got)
	}
}

func TestRoundSecondsToMinutes(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{0, 0},
		{-30, 0},
		{1, 1},   // any positive overlap reports at least one minute
		{29, 1},  // rounds down but clamps to 1
		{30, 1},  // 30s rounds to 1m
		{89, 1},  // 1m29s rounds down
		{90, 2},  // 1m30s rounds up
		{60, 1},
		{3600, 60},
		{5400, 90},
	}
	for _, tt := range tests {
		if got := RoundSecondsToMinutes(tt.seconds); got != tt.want {
			t.Errorf("RoundSecondsToMinutes(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestRoundSecondsToMinutes_PositiveAlwaysAtLeastOne(t *testing.T) {
	for sec := 1; sec < 120; sec++ {
		if got := RoundSecondsToMinutes(sec); got < 1 {
			t.Fatalf("RoundSecondsToMinutes(%d) = %d, want >= 1", sec, got)
		}
	}
}

func TestNormalizeNote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"plain note", "plain note"},
		{"  leading and trailing  ", "leading and trailing"},
		{"tabs\tand\nnewlines\r\nhere", "tabs and newlines here"},
		{"many    spaces", "many spaces"},
	}
	for _, tt := range tests {
		if got := NormalizeNote(tt.in); got != tt.want {
			t.Errorf("NormalizeNote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeEntry_Open(t *testing.T) {
	e := TimeEntry{Start: time.Now()}
	if !e.Open() {
		t.Error("entry with nil End should be open")
	}
	end := time.Now()
	e.End = &end
	if e.Open() {
		t.Error("entry with End set should not be open")
	}
}
