// SPDX-License-Identifier: MPL-2.0

package course

import (
	"strings"
	"testing"
)

func TestItemValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    Item
		wantErr string
	}{
		{"header ok", Item{Kind: KindHeader, Title: "Reading"}, ""},
		{"missing title", Item{Kind: KindHeader}, "title is required"},
		{"missing kind", Item{Title: "x"}, "kind is required"},
		{"unknown kind", Item{Kind: "quiz", Title: "x"}, `unknown item kind "quiz"`},
		{"file without name", Item{Kind: KindFile, Title: "Notes"}, "file item needs a file name"},
		{"file ok", Item{Kind: KindFile, Title: "Notes", File: "notes.pdf"}, ""},
		{"url without url", Item{Kind: KindURL, Title: "Syllabus"}, "url item needs a url"},
		{"webwork without set", Item{Kind: KindWebwork, Title: "HW", DueDay: "Friday"}, "webwork item needs a set"},
		{"webwork without due", Item{Kind: KindWebwork, Title: "HW", Set: "hw_1"}, "webwork item needs due_day or due_date"},
		{"webwork ok", Item{Kind: KindWebwork, Title: "HW", Set: "hw_1", DueDay: "Friday"}, ""},
		{"assignment create bad day", Item{Kind: KindAssignmentCreate, Title: "Exam", DueDay: "Someday"}, `unknown weekday "Someday"`},
		{"video without id", Item{Kind: KindVideo, Title: "Intro"}, "video item needs a video_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.item.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAssignmentName(t *testing.T) {
	t.Parallel()

	if got := (Item{Kind: KindAssignment, Title: "Homework 1"}).AssignmentName(); got != "Homework 1" {
		t.Errorf("title fallback = %q", got)
	}
	if got := (Item{Kind: KindAssignment, Title: "HW", Name: "Homework 1"}).AssignmentName(); got != "Homework 1" {
		t.Errorf("explicit name = %q", got)
	}
	if got := (Item{Kind: KindWebwork, Title: "HW", Set: "chapter_2_limits"}).AssignmentName(); got != "chapter 2 limits" {
		t.Errorf("webwork set name = %q", got)
	}
}

func TestAnnouncementBody(t *testing.T) {
	t.Parallel()

	it := Item{Description: "Read chapter 2.", Announcement: "description"}
	if got := it.AnnouncementBody(); got != "Read chapter 2." {
		t.Errorf("announcement = %q, want description text", got)
	}
	it.Announcement = "Custom text"
	if got := it.AnnouncementBody(); got != "Custom text" {
		t.Errorf("announcement = %q", got)
	}
}

func TestItemString_Indent(t *testing.T) {
	t.Parallel()

	it := Item{Kind: KindFile, Title: "Notes", File: "notes.pdf", Indent: 2}
	got := it.String()
	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, ">  >  ") {
			t.Errorf("line %q missing indent prefix", line)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Course:   CourseInfo{ID: 42, Name: "Advanced Numerology"},
		Semester: SemesterInfo{StartDate: "2026-09-07"},
		Weeks: []Week{
			{Number: 1, Items: []Item{{Kind: KindHeader, Title: "Welcome"}}},
			{Number: 2},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noID := valid
	noID.Course.ID = 0
	if err := noID.Validate(); err == nil {
		t.Error("expected error for missing course id")
	}

	badDate := valid
	badDate.Semester = SemesterInfo{StartDate: "Sept 7"}
	if err := badDate.Validate(); err == nil {
		t.Error("expected error for malformed start date")
	}

	dupWeek := valid
	dupWeek.Weeks = []Week{{Number: 1}, {Number: 1}}
	if err := dupWeek.Validate(); err == nil || !strings.Contains(err.Error(), "duplicate week") {
		t.Errorf("error = %v, want duplicate week", err)
	}
}

func TestSemesterDatesNormalizesStart(t *testing.T) {
	t.Parallel()

	// 2026-09-09 is a Wednesday; the semester must anchor on Monday the 7th.
	cfg := Config{Semester: SemesterInfo{StartDate: "2026-09-09"}}
	sem, err := cfg.SemesterDates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sem.Start.Format("2006-01-02"); got != "2026-09-07" {
		t.Errorf("semester start = %s, want 2026-09-07", got)
	}
}
