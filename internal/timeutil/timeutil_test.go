package timeutil_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/eventcal/internal/timeutil"
)

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	if !timeutil.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timeutil.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 10, 14, 30, 12, 0, time.UTC)

	start := timeutil.StartOfDay(ts)
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", start, want)
	}

	end := timeutil.EndOfDay(ts)
	want = time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", end, want)
	}
}

func TestNextWeekday(t *testing.T) {
	// 2025-06-10 is a Tuesday.
	tue := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		wd   time.Weekday
		want string
	}{
		{time.Wednesday, "2025-06-11"},
		{time.Monday, "2025-06-16"},
		{time.Tuesday, "2025-06-17"}, // same weekday jumps a full week
		{time.Sunday, "2025-06-15"},
	}
	for _, tt := range tests {
		got := timeutil.NextWeekday(tue, tt.wd).Format("2006-01-02")
		if got != tt.want {
			t.Errorf("NextWeekday(%v) = %s, want %s", tt.wd, got, tt.want)
		}
	}
}
