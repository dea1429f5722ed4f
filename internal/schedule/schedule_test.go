// SPDX-License-Identifier: MPL-2.0

package schedule

import (
	"testing"
	"time"
)

// 2026-09-07 is a Monday.
var monday = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func TestNewSemesterNormalizesToMonday(t *testing.T) {
	t.Parallel()

	// Construction from any weekday of the first week must land on Monday.
	for d := 0; d < 7; d++ {
		sem := NewSemester(monday.AddDate(0, 0, d), "")
		if sem.Start.Weekday() != time.Monday {
			t.Errorf("start from offset %d: weekday = %s, want Monday", d, sem.Start.Weekday())
		}
		if !sem.Start.Equal(monday) {
			t.Errorf("start from offset %d: got %s, want %s", d, sem.Start, monday)
		}
	}
}

func TestNewSemesterDefaultDueTime(t *testing.T) {
	t.Parallel()

	if got := NewSemester(monday, "").DueTime; got != "23:59:00" {
		t.Errorf("default due time = %q, want %q", got, "23:59:00")
	}
	if got := NewSemester(monday, "17:00:00").DueTime; got != "17:00:00" {
		t.Errorf("explicit due time = %q, want %q", got, "17:00:00")
	}
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	sem := NewSemester(monday, "")

	if got := sem.WeekStart(1); !got.Equal(monday) {
		t.Errorf("WeekStart(1) = %s, want %s", got, monday)
	}
	if got := sem.WeekStart(3); !got.Equal(monday.AddDate(0, 0, 14)) {
		t.Errorf("WeekStart(3) = %s, want %s", got, monday.AddDate(0, 0, 14))
	}
}

// TestDueDayLinearity checks that adding one to the week shifts the due date
// by exactly seven days, and adding one to the day shifts it by one.
func TestDueDayLinearity(t *testing.T) {
	t.Parallel()

	sem := NewSemester(monday, "")

	for week := 1; week <= 15; week++ {
		for day := Monday; day <= Sunday; day++ {
			base := sem.WeekAndDay(week, day)
			nextWeek := sem.WeekAndDay(week+1, day)
			if got := nextWeek.Sub(base); got != 7*24*time.Hour {
				t.Fatalf("week %d day %s: next week shifted by %s, want 168h", week, day, got)
			}
			if day < Sunday {
				nextDay := sem.WeekAndDay(week, day+1)
				if got := nextDay.Sub(base); got != 24*time.Hour {
					t.Fatalf("week %d day %s: next day shifted by %s, want 24h", week, day, got)
				}
			}
		}
	}
}

func TestDueDay(t *testing.T) {
	t.Parallel()

	sem := NewSemester(monday, "")

	if got := sem.DueDay(1, Wednesday, ""); got != "2026-09-09T23:59:00" {
		t.Errorf("DueDay(1, Wednesday) = %q, want %q", got, "2026-09-09T23:59:00")
	}
	if got := sem.DueDay(2, Friday, "17:00:00"); got != "2026-09-18T17:00:00" {
		t.Errorf("DueDay(2, Friday, 17:00:00) = %q, want %q", got, "2026-09-18T17:00:00")
	}
}

func TestDueDate(t *testing.T) {
	t.Parallel()

	sem := NewSemester(monday, "")

	if got := sem.DueDate("10-15", ""); got != "2026-10-15T23:59:00" {
		t.Errorf("DueDate(10-15) = %q, want %q", got, "2026-10-15T23:59:00")
	}
	// Slash separators are accepted.
	if got := sem.DueDate("10/15", "08:30:00"); got != "2026-10-15T08:30:00" {
		t.Errorf("DueDate(10/15) = %q, want %q", got, "2026-10-15T08:30:00")
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	if d, err := ParseDay("Friday"); err != nil || d != Friday {
		t.Errorf("ParseDay(Friday) = (%v, %v)", d, err)
	}
	if d, err := ParseDay(" wednesday "); err != nil || d != Wednesday {
		t.Errorf("ParseDay(wednesday) = (%v, %v)", d, err)
	}
	if _, err := ParseDay("someday"); err == nil {
		t.Error("ParseDay(someday) expected error")
	}
}
