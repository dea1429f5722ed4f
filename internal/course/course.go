// SPDX-License-Identifier: MPL-2.0

// Package course models the declarative course configuration file.
//
// A course file is YAML: top-level course metadata, semester dates, and a
// list of week blocks, each carrying an ordered list of module items. Item
// kinds form a tagged variant over a single struct — the "kind" field
// selects which other fields are meaningful, and Validate enforces the
// per-kind requirements.
package course

import (
	"fmt"
	"strings"
	"time"

	"canvasctl/internal/schedule"
)

// Kind discriminates module item variants.
type Kind string

// Module item kinds accepted in the "kind" field of a week item.
const (
	KindHeader           Kind = "header"
	KindFile             Kind = "file"
	KindLocalFile        Kind = "local_file"
	KindAssignment       Kind = "assignment"
	KindAssignmentCreate Kind = "assignment_create"
	KindWebwork          Kind = "webwork"
	KindURL              Kind = "url"
	KindVideo            Kind = "video"
	KindTool             Kind = "tool"
)

// indentPrefix is prepended once per indent level when describing items.
const indentPrefix = ">  "

type (
	// Config is the root of a course configuration file.
	Config struct {
		Course   CourseInfo   `yaml:"course"`
		Semester SemesterInfo `yaml:"semester"`
		Weeks    []Week       `yaml:"weeks"`
	}

	// CourseInfo is the course-level metadata.
	CourseInfo struct {
		ID           int64  `yaml:"id"`
		Name         string `yaml:"name"`
		Number       string `yaml:"number"`
		WebworkClass string `yaml:"webwork_class"`
	}

	// SemesterInfo holds the raw semester dates from the file.
	SemesterInfo struct {
		StartDate string `yaml:"start_date"` // "2006-01-02"
		DueTime   string `yaml:"due_time"`   // "HH:MM:SS", optional
	}

	// Week is one week block: a week number and its ordered items.
	Week struct {
		Number int    `yaml:"week"`
		Items  []Item `yaml:"items"`
	}

	// Item is the tagged variant over module item kinds. Kind selects the
	// meaningful fields; everything else stays at its zero value.
	Item struct {
		Kind   Kind   `yaml:"kind"`
		Title  string `yaml:"title"`
		Indent int    `yaml:"indent"`

		// KindFile: name of an existing remote file to link.
		File string `yaml:"file"`

		// KindLocalFile: local path to upload and where to put it.
		LocalPath  string `yaml:"local_path"`
		RemoteDir  string `yaml:"remote_dir"`
		RemoteName string `yaml:"remote_name"`

		// KindAssignment / KindAssignmentCreate / KindWebwork: assignment
		// name; defaults to the title (or, for webwork, the set name with
		// underscores replaced by spaces).
		Name string `yaml:"name"`

		// KindAssignmentCreate fields.
		Description       string   `yaml:"description"` // Markdown
		Points            float64  `yaml:"points"`
		DueDay            string   `yaml:"due_day"`  // weekday name, resolved within the item's week
		DueDate           string   `yaml:"due_date"` // "mm-dd", year from semester start
		DueTime           string   `yaml:"due_time"` // overrides the semester default
		Group             string   `yaml:"group"`
		SubmissionTypes   string   `yaml:"submission_types"`
		AllowedExtensions []string `yaml:"allowed_extensions"`
		PeerReviews       bool     `yaml:"peer_reviews"`
		AutoPeerReviews   bool     `yaml:"auto_peer_reviews"`

		// Announcement posts an announcement after creating the assignment.
		// The literal value "description" reuses the assignment description.
		Announcement string `yaml:"announcement"`

		// KindURL / KindTool: target URL.
		URL    string `yaml:"url"`
		NewTab bool   `yaml:"new_tab"`

		// KindVideo: YouTube video id, expanded to a new-tab URL.
		VideoID string `yaml:"video_id"`

		// KindWebwork: problem set name within the course's WeBWorK class.
		Set string `yaml:"set"`
	}
)

// SemesterDates converts the raw semester info into a schedule.Semester.
// The start date is normalized to its week's Monday by construction.
func (c *Config) SemesterDates() (schedule.Semester, error) {
	start, err := time.ParseInLocation("2006-01-02", c.Semester.StartDate, time.Local)
	if err != nil {
		return schedule.Semester{}, fmt.Errorf("course: parsing semester start_date %q: %w", c.Semester.StartDate, err)
	}
	return schedule.NewSemester(start, c.Semester.DueTime), nil
}

// WeekByNumber finds a week block by its number.
func (c *Config) WeekByNumber(n int) (Week, bool) {
	for _, w := range c.Weeks {
		if w.Number == n {
			return w, true
		}
	}
	return Week{}, false
}

// Validate checks the config structurally: course id, semester dates,
// unique positive week numbers, and per-kind item requirements.
func (c *Config) Validate() error {
	if c.Course.ID == 0 {
		return fmt.Errorf("course: course.id is required")
	}
	if _, err := c.SemesterDates(); err != nil {
		return err
	}

	seen := make(map[int]bool)
	for _, w := range c.Weeks {
		if w.Number < 1 {
			return fmt.Errorf("course: week number %d must be positive", w.Number)
		}
		if seen[w.Number] {
			return fmt.Errorf("course: duplicate week %d", w.Number)
		}
		seen[w.Number] = true

		for i, item := range w.Items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("course: week %d item %d: %w", w.Number, i+1, err)
			}
		}
	}
	return nil
}

// Validate checks the per-kind field requirements of a single item.
func (it Item) Validate() error {
	if it.Title == "" {
		return fmt.Errorf("title is required")
	}
	switch it.Kind {
	case KindHeader:
		return nil
	case KindFile:
		if it.File == "" {
			return fmt.Errorf("file item needs a file name")
		}
	case KindLocalFile:
		if it.LocalPath == "" {
			return fmt.Errorf("local_file item needs a local_path")
		}
	case KindAssignment:
		return nil
	case KindAssignmentCreate:
		if it.DueDay == "" && it.DueDate == "" {
			return fmt.Errorf("assignment_create item needs due_day or due_date")
		}
		if it.DueDay != "" {
			if _, err := schedule.ParseDay(it.DueDay); err != nil {
				return err
			}
		}
	case KindWebwork:
		if it.Set == "" {
			return fmt.Errorf("webwork item needs a set")
		}
		if it.DueDay == "" && it.DueDate == "" {
			return fmt.Errorf("webwork item needs due_day or due_date")
		}
	case KindURL, KindTool:
		if it.URL == "" {
			return fmt.Errorf("%s item needs a url", it.Kind)
		}
	case KindVideo:
		if it.VideoID == "" {
			return fmt.Errorf("video item needs a video_id")
		}
	case "":
		return fmt.Errorf("kind is required")
	default:
		return fmt.Errorf("unknown item kind %q", it.Kind)
	}
	return nil
}

// AssignmentName resolves the effective assignment name: explicit name,
// else the webwork set with underscores as spaces, else the title.
func (it Item) AssignmentName() string {
	if it.Name != "" {
		return it.Name
	}
	if it.Kind == KindWebwork {
		return strings.ReplaceAll(it.Set, "_", " ")
	}
	return it.Title
}

// AnnouncementBody resolves the announcement Markdown: the literal value
// "description" reuses the assignment description.
func (it Item) AnnouncementBody() string {
	if it.Announcement == "description" {
		return it.Description
	}
	return it.Announcement
}

// VideoURL expands a video id to its YouTube short URL.
func (it Item) VideoURL() string {
	return "https://youtu.be/" + it.VideoID
}

// Describe returns the human-readable dry-run lines for the item, without
// indentation applied.
func (it Item) Describe() []string {
	switch it.Kind {
	case KindHeader:
		return []string{it.Title}
	case KindFile:
		return []string{"File:", it.Title, it.File}
	case KindLocalFile:
		name := it.RemoteName
		if name == "" {
			name = "(keep local name)"
		}
		return []string{"File upload:", it.Title, it.LocalPath, it.RemoteDir, name}
	case KindAssignment:
		return []string{"Assignment:", it.Title, it.AssignmentName()}
	case KindAssignmentCreate:
		return []string{
			"Create assignment:",
			it.Title,
			it.AssignmentName(),
			it.Description,
			"Points: " + fmt.Sprint(it.Points),
			"Due: " + it.dueDescription(),
			"Group: " + orNone(it.Group),
			"Submissions: " + orDefault(it.SubmissionTypes, "on_paper"),
			"Peer reviews: " + fmt.Sprint(it.PeerReviews),
			"Announcement: " + orNone(it.Announcement),
		}
	case KindWebwork:
		return []string{
			"WeBWorK assignment:",
			it.Title,
			it.AssignmentName(),
			"Set: " + it.Set,
			"Points: " + fmt.Sprint(it.Points),
			"Due: " + it.dueDescription(),
			"Group: " + orNone(it.Group),
			"Announcement: " + orNone(it.Announcement),
		}
	case KindURL:
		return []string{"URL:", it.Title, "URL: " + it.URL, "New tab: " + fmt.Sprint(it.NewTab)}
	case KindVideo:
		return []string{"Video:", it.Title, "URL: " + it.VideoURL()}
	case KindTool:
		return []string{"Tool:", it.Title, "URL: " + it.URL, "New tab: " + fmt.Sprint(it.NewTab)}
	default:
		return []string{string(it.Kind) + ": " + it.Title}
	}
}

// String renders the item description with its indent prefix applied to
// every line.
func (it Item) String() string {
	prefix := strings.Repeat(indentPrefix, it.Indent)
	lines := it.Describe()
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (it Item) dueDescription() string {
	switch {
	case it.DueDay != "":
		if it.DueTime != "" {
			return it.DueDay + " " + it.DueTime
		}
		return it.DueDay
	case it.DueDate != "":
		if it.DueTime != "" {
			return it.DueDate + " " + it.DueTime
		}
		return it.DueDate
	default:
		return "(none)"
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
