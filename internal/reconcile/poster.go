// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"canvasctl/internal/canvas"
	"canvasctl/internal/course"
	"canvasctl/internal/naming"
	"canvasctl/internal/schedule"
)

// defaultWebworkBaseURL is the WeBWorK instance assignments point at unless
// configured otherwise.
const defaultWebworkBaseURL = "https://webwork.svsu.edu/webwork2"

// dueStampLayout is the wire form due timestamps are produced in.
const dueStampLayout = "2006-01-02T15:04:05"

type (
	// Poster posts a week's items into a Canvas module, in input order.
	// Items append one at a time, so remote order matches file order.
	Poster struct {
		api      API
		courseID int64
		sem      schedule.Semester

		webworkBaseURL string
		webworkClass   string

		logger *log.Logger
	}

	// PosterOption configures a Poster.
	PosterOption func(*Poster)
)

// WithWebwork points webwork items at a WeBWorK instance and class. An empty
// baseURL keeps the default instance.
func WithWebwork(baseURL, class string) PosterOption {
	return func(p *Poster) {
		if baseURL != "" {
			p.webworkBaseURL = baseURL
		}
		p.webworkClass = class
	}
}

// WithPosterLogger sets the logger used for per-item progress.
func WithPosterLogger(logger *log.Logger) PosterOption {
	return func(p *Poster) {
		p.logger = logger
	}
}

// NewPoster builds a Poster for one course and semester.
func NewPoster(api API, courseID int64, sem schedule.Semester, opts ...PosterOption) *Poster {
	p := &Poster{
		api:            api,
		courseID:       courseID,
		sem:            sem,
		webworkBaseURL: defaultWebworkBaseURL,
		logger:         log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PostWeek creates the weekly module for the week block and posts its items.
// The module is created unconditionally; posting the same week twice makes a
// second module.
func (p *Poster) PostWeek(ctx context.Context, week course.Week) (WeekResult, error) {
	mod, err := CreateWeeklyModule(ctx, p.api, p.courseID, p.sem.WeekStart(week.Number))
	if err != nil {
		return WeekResult{Week: week.Number}, err
	}
	p.logger.Info("created module", "name", mod.Name, "id", mod.ID)

	return WeekResult{
		Week:       week.Number,
		ModuleID:   mod.ID,
		ModuleName: mod.Name,
		Items:      p.postItems(ctx, mod.ID, week),
	}, nil
}

// UpdateWeek appends the week block's items to the already-existing weekly
// module. Returns ErrModuleNotFound when the module is not on Canvas.
func (p *Poster) UpdateWeek(ctx context.Context, week course.Week) (WeekResult, error) {
	name := naming.WeeklyModuleName(p.sem.WeekStart(week.Number))
	mod, found, err := FindModuleByName(ctx, p.api, p.courseID, name)
	if err != nil {
		return WeekResult{Week: week.Number}, err
	}
	if !found {
		return WeekResult{Week: week.Number}, fmt.Errorf("%q: %w", name, ErrModuleNotFound)
	}

	return WeekResult{
		Week:       week.Number,
		ModuleID:   mod.ID,
		ModuleName: mod.Name,
		Items:      p.postItems(ctx, mod.ID, week),
	}, nil
}

// postItems posts every item in order, recording per-item outcomes. A lookup
// miss or remote failure on one item does not stop the rest.
func (p *Poster) postItems(ctx context.Context, moduleID int64, week course.Week) []ItemResult {
	results := make([]ItemResult, 0, len(week.Items))
	for _, item := range week.Items {
		res := ItemResult{Title: item.Title, Kind: item.Kind, Status: StatusCreated}
		if err := p.postItem(ctx, moduleID, week, item); err != nil {
			res.Err = err
			res.Status = StatusFailed
			if errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrAssignmentNotFound) {
				res.Status = StatusSkipped
			}
			p.logger.Warn("item not posted", "title", item.Title, "status", res.Status, "err", err)
		} else {
			p.logger.Info("posted item", "title", item.Title, "kind", item.Kind)
		}
		results = append(results, res)
	}
	return results
}

func (p *Poster) postItem(ctx context.Context, moduleID int64, week course.Week, item course.Item) error {
	switch item.Kind {
	case course.KindHeader:
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:  item.Title,
			Type:   canvas.TypeSubHeader,
			Indent: item.Indent,
		})

	case course.KindFile:
		file, err := p.findFile(ctx, item.File)
		if err != nil {
			return err
		}
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:     item.Title,
			Type:      canvas.TypeFile,
			Indent:    item.Indent,
			ContentID: file.ID,
		})

	case course.KindLocalFile:
		file, err := p.api.UploadFile(ctx, p.courseID, item.LocalPath, item.RemoteDir, item.RemoteName)
		if err != nil {
			return fmt.Errorf("uploading %q: %w", item.LocalPath, err)
		}
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:     item.Title,
			Type:      canvas.TypeFile,
			Indent:    item.Indent,
			ContentID: file.ID,
		})

	case course.KindAssignment:
		assignment, err := p.findAssignment(ctx, item.AssignmentName())
		if err != nil {
			return err
		}
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:     item.Title,
			Type:      canvas.TypeAssignment,
			Indent:    item.Indent,
			ContentID: assignment.ID,
		})

	case course.KindAssignmentCreate:
		return p.createAssignmentItem(ctx, moduleID, week, item, canvas.CreateAssignmentParams{
			Name:              item.AssignmentName(),
			Description:       canvas.MarkdownToHTML(item.Description),
			Points:            item.Points,
			SubmissionTypes:   item.SubmissionTypes,
			AllowedExtensions: item.AllowedExtensions,
			PeerReviews:       item.PeerReviews,
			AutoPeerReviews:   item.AutoPeerReviews,
			Published:         true,
		})

	case course.KindWebwork:
		return p.createAssignmentItem(ctx, moduleID, week, item, canvas.CreateAssignmentParams{
			Name:               item.AssignmentName(),
			Description:        canvas.MarkdownToHTML(orWebworkDescription(item.Description)),
			Points:             item.Points,
			SubmissionTypes:    "external_tool",
			ExternalToolURL:    p.webworkURL(item.Set),
			ExternalToolNewTab: true,
			Published:          true,
		})

	case course.KindURL:
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:       item.Title,
			Type:        canvas.TypeExternalURL,
			Indent:      item.Indent,
			ExternalURL: item.URL,
			NewTab:      item.NewTab,
		})

	case course.KindVideo:
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:       item.Title,
			Type:        canvas.TypeExternalURL,
			Indent:      item.Indent,
			ExternalURL: item.VideoURL(),
			NewTab:      true,
		})

	case course.KindTool:
		return p.createItem(ctx, moduleID, canvas.CreateItemParams{
			Title:       item.Title,
			Type:        canvas.TypeExternalTool,
			Indent:      item.Indent,
			ExternalURL: item.URL,
			NewTab:      item.NewTab,
		})

	default:
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}
}

// createAssignmentItem creates the assignment, links it into the module, and
// posts the optional announcement.
func (p *Poster) createAssignmentItem(ctx context.Context, moduleID int64, week course.Week, item course.Item, params canvas.CreateAssignmentParams) error {
	params.DueAt = p.dueAt(week, item)
	groupID, err := p.resolveAssignmentGroup(ctx, item.Group)
	if err != nil {
		return err
	}
	params.GroupID = groupID

	assignment, err := p.api.CreateAssignment(ctx, p.courseID, params)
	if err != nil {
		return fmt.Errorf("creating assignment %q: %w", params.Name, err)
	}

	if err := p.createItem(ctx, moduleID, canvas.CreateItemParams{
		Title:     item.Title,
		Type:      canvas.TypeAssignment,
		Indent:    item.Indent,
		ContentID: assignment.ID,
	}); err != nil {
		return err
	}

	if item.Announcement == "" {
		return nil
	}
	return p.announce(ctx, item, params.Name, params.DueAt)
}

// announce posts the item's announcement with a due-date footer appended.
func (p *Poster) announce(ctx context.Context, item course.Item, assignmentName, dueAt string) error {
	body := item.AnnouncementBody()
	if due, err := time.ParseInLocation(dueStampLayout, dueAt, time.Local); err == nil {
		body += fmt.Sprintf("\n\n__Due %s at %s__", due.Format("01/02/06"), due.Format("15:04"))
	}

	title := "Assignment " + assignmentName + " posted"
	if err := p.api.PostAnnouncement(ctx, p.courseID, title, body); err != nil {
		return fmt.Errorf("posting announcement %q: %w", title, err)
	}
	return nil
}

// dueAt resolves the item's due timestamp within its week. Validate has
// already ensured due_day parses when present.
func (p *Poster) dueAt(week course.Week, item course.Item) string {
	if item.DueDay != "" {
		day, err := schedule.ParseDay(item.DueDay)
		if err != nil {
			return ""
		}
		return p.sem.DueDay(week.Number, day, item.DueTime)
	}
	if item.DueDate != "" {
		return p.sem.DueDate(item.DueDate, item.DueTime)
	}
	return ""
}

func (p *Poster) createItem(ctx context.Context, moduleID int64, params canvas.CreateItemParams) error {
	if _, err := p.api.CreateModuleItem(ctx, p.courseID, moduleID, params); err != nil {
		return fmt.Errorf("creating item %q: %w", params.Title, err)
	}
	return nil
}

// findFile returns the first course file matching the name exactly, on either
// display name or filename.
func (p *Poster) findFile(ctx context.Context, name string) (canvas.File, error) {
	files, err := p.api.ListFiles(ctx, p.courseID, name)
	if err != nil {
		return canvas.File{}, fmt.Errorf("listing files: %w", err)
	}
	for _, f := range files {
		if f.DisplayName == name || f.Filename == name {
			return f, nil
		}
	}
	return canvas.File{}, fmt.Errorf("%q: %w", name, ErrFileNotFound)
}

// findAssignment returns the first assignment matching the name exactly.
func (p *Poster) findAssignment(ctx context.Context, name string) (canvas.Assignment, error) {
	assignments, err := p.api.ListAssignments(ctx, p.courseID, name)
	if err != nil {
		return canvas.Assignment{}, fmt.Errorf("listing assignments: %w", err)
	}
	for _, a := range assignments {
		if a.Name == name {
			return a, nil
		}
	}
	return canvas.Assignment{}, fmt.Errorf("%q: %w", name, ErrAssignmentNotFound)
}

// resolveAssignmentGroup returns the id of the first group matching the name
// exactly. An empty name falls back to the course's first group; a course
// with no groups at all yields 0, letting Canvas pick its default. A named
// group that does not exist is an item failure, not a skip: the assignment
// would land in the wrong grading category.
func (p *Poster) resolveAssignmentGroup(ctx context.Context, name string) (int64, error) {
	groups, err := p.api.ListAssignmentGroups(ctx, p.courseID)
	if err != nil {
		return 0, fmt.Errorf("listing assignment groups: %w", err)
	}
	if name == "" {
		if len(groups) == 0 {
			return 0, nil
		}
		return groups[0].ID, nil
	}
	for _, g := range groups {
		if g.Name == name {
			return g.ID, nil
		}
	}
	return 0, fmt.Errorf("assignment group %q not found", name)
}

func (p *Poster) webworkURL(set string) string {
	return fmt.Sprintf("%s/%s/%s", p.webworkBaseURL, p.webworkClass, set)
}

func orWebworkDescription(desc string) string {
	if desc == "" {
		return "Complete the problem set on WeBWorK."
	}
	return desc
}
