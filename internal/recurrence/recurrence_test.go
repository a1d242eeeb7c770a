package recurrence

import (
	"testing"
	"time"

	"github.com/dukerupert/zonetasks/internal/model"
)

func TestDailyAlwaysGenerates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		if !ShouldGenerate(model.Daily(), d) {
			t.Fatalf("daily cadence not due on %s", d.Format(model.DateLayout))
		}
	}
}

func TestWeeklyMatchesWeekdaySet(t *testing.T) {
	c := model.Weekly(time.Monday, time.Wednesday, time.Friday)
	// Feb 1 2026 is a Sunday.
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	want := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}

	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		if got := ShouldGenerate(c, d); got != want[d.Weekday()] {
			t.Errorf("ShouldGenerate(%s) = %v, want %v", d.Weekday(), got, want[d.Weekday()])
		}
	}
}

func TestWeeklySunday(t *testing.T) {
	c := model.Weekly(time.Sunday)
	sunday := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !ShouldGenerate(c, sunday) {
		t.Error("expected weekly Sunday cadence to be due on Sunday")
	}
	if ShouldGenerate(c, sunday.AddDate(0, 0, 1)) {
		t.Error("expected weekly Sunday cadence not to be due on Monday")
	}
}

func TestWeeklyEmptySetNeverGenerates(t *testing.T) {
	c := model.Weekly()
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if ShouldGenerate(c, start.AddDate(0, 0, i)) {
			t.Fatalf("empty weekly cadence due on day %d", i)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		cadence model.Cadence
		want    string
	}{
		{model.Daily(), "Daily"},
		{model.Weekly(time.Friday, time.Monday), "Weekly: Mon, Fri"},
		{model.Weekly(time.Sunday), "Weekly: Sun"},
		{model.Weekly(), "Weekly: no days"},
	}

	for _, tt := range tests {
		if got := Describe(tt.cadence); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.cadence, got, tt.want)
		}
	}
}
