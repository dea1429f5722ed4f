// SPDX-License-Identifier: MPL-2.0

package canvas

import (
	"context"
	"fmt"
	"net/url"
)

type (
	// Assignment is a gradeable course assignment.
	Assignment struct {
		ID             int64   `json:"id"`
		Name           string  `json:"name"`
		PointsPossible float64 `json:"points_possible"`
		DueAt          string  `json:"due_at"`
	}

	// AssignmentGroup is a grading category assignments belong to.
	AssignmentGroup struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// CreateAssignmentParams describes an assignment to create.
	CreateAssignmentParams struct {
		Name        string
		Description string // HTML body
		Points      float64
		DueAt       string // "2006-01-02T15:04:05", local to the course
		GroupID     int64

		// SubmissionTypes is the Canvas submission type, e.g. "on_paper",
		// "online_upload", "external_tool". Empty defaults to "on_paper".
		SubmissionTypes string

		// AllowedExtensions restricts online_upload submissions.
		AllowedExtensions []string

		PeerReviews     bool
		AutoPeerReviews bool

		// ExternalToolURL configures an external_tool submission target.
		ExternalToolURL    string
		ExternalToolNewTab bool

		Published bool
	}
)

// ListAssignments lists course assignments, optionally filtered remotely by
// a name substring.
func (c *Client) ListAssignments(ctx context.Context, courseID int64, search string) ([]Assignment, error) {
	reqURL := c.courseURL(courseID, "assignments") + "?" + listQuery(search).Encode()
	assignments, err := getPaged[Assignment](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return assignments, nil
}

// ListAssignmentGroups lists the course's assignment groups in position order.
func (c *Client) ListAssignmentGroups(ctx context.Context, courseID int64) ([]AssignmentGroup, error) {
	reqURL := c.courseURL(courseID, "assignment_groups") + "?" + listQuery("").Encode()
	groups, err := getPaged[AssignmentGroup](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("listing assignment groups: %w", err)
	}
	return groups, nil
}

// CreateAssignment creates an assignment in the course.
func (c *Client) CreateAssignment(ctx context.Context, courseID int64, params CreateAssignmentParams) (Assignment, error) {
	submissionTypes := params.SubmissionTypes
	if submissionTypes == "" {
		submissionTypes = "on_paper"
	}

	form := url.Values{}
	form.Set("assignment[name]", params.Name)
	form.Set("assignment[description]", params.Description)
	form.Set("assignment[points_possible]", fmt.Sprint(params.Points))
	form.Set("assignment[submission_types][]", submissionTypes)
	if params.DueAt != "" {
		form.Set("assignment[due_at]", params.DueAt)
	}
	if params.GroupID != 0 {
		form.Set("assignment[assignment_group_id]", fmt.Sprint(params.GroupID))
	}
	for _, ext := range params.AllowedExtensions {
		form.Add("assignment[allowed_extensions][]", ext)
	}
	if params.PeerReviews {
		form.Set("assignment[peer_reviews]", "true")
	}
	if params.AutoPeerReviews {
		form.Set("assignment[automatic_peer_reviews]", "true")
	}
	if params.ExternalToolURL != "" {
		form.Set("assignment[external_tool_tag_attributes][url]", params.ExternalToolURL)
		form.Set("assignment[external_tool_tag_attributes][new_tab]", fmt.Sprint(params.ExternalToolNewTab))
	}
	if params.Published {
		form.Set("assignment[published]", "true")
	}

	var assignment Assignment
	if err := c.postForm(ctx, c.courseURL(courseID, "assignments"), form, &assignment); err != nil {
		return Assignment{}, fmt.Errorf("creating assignment %q: %w", params.Name, err)
	}
	return assignment, nil
}
