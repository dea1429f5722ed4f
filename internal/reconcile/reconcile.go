// SPDX-License-Identifier: MPL-2.0

// Package reconcile turns declarative week blocks into Canvas state.
//
// The reconciler finds or creates modules by name, computes the next
// ordinal module number from what already exists remotely, and posts a
// week's items in order. Item-level misses (a file or assignment that is
// not on Canvas) degrade to per-item failures: they are recorded and
// processing continues with the remaining items. Module-level failures
// abort the week.
package reconcile

import (
	"context"
	"errors"

	"canvasctl/internal/canvas"
	"canvasctl/internal/course"
)

// Sentinel errors for lookup misses. They are carried in ItemResult.Err for
// skipped items and returned directly for module lookups.
var (
	// ErrModuleNotFound is returned when the update flow cannot find the
	// weekly module on Canvas.
	ErrModuleNotFound = errors.New("module not found")

	// ErrFileNotFound marks a file item whose named course file is not on
	// Canvas.
	ErrFileNotFound = errors.New("file not found on Canvas")

	// ErrAssignmentNotFound marks an assignment item whose named assignment
	// does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found on Canvas")
)

// API is the Canvas surface the reconciler needs. *canvas.Client satisfies
// it; tests substitute fakes.
type API interface {
	ListModules(ctx context.Context, courseID int64, search string) ([]canvas.Module, error)
	CreateModule(ctx context.Context, courseID int64, name string, position int) (canvas.Module, error)
	ListModuleItems(ctx context.Context, courseID, moduleID int64, search string) ([]canvas.ModuleItem, error)
	CreateModuleItem(ctx context.Context, courseID, moduleID int64, params canvas.CreateItemParams) (canvas.ModuleItem, error)
	ListFiles(ctx context.Context, courseID int64, search string) ([]canvas.File, error)
	UploadFile(ctx context.Context, courseID int64, localPath, remoteDir, remoteName string) (canvas.File, error)
	ListAssignments(ctx context.Context, courseID int64, search string) ([]canvas.Assignment, error)
	ListAssignmentGroups(ctx context.Context, courseID int64) ([]canvas.AssignmentGroup, error)
	CreateAssignment(ctx context.Context, courseID int64, params canvas.CreateAssignmentParams) (canvas.Assignment, error)
	PostAnnouncement(ctx context.Context, courseID int64, title, markdownBody string) error
}

// ItemStatus is the outcome of posting a single item.
type ItemStatus string

// Item outcomes.
const (
	// StatusCreated: the item now exists in the remote module.
	StatusCreated ItemStatus = "created"

	// StatusSkipped: a referenced resource was missing; the item was left
	// out and processing continued.
	StatusSkipped ItemStatus = "skipped"

	// StatusFailed: a remote call failed; the item was abandoned and
	// processing continued.
	StatusFailed ItemStatus = "failed"
)

type (
	// ItemResult records the outcome of one item, in input order.
	ItemResult struct {
		Title  string
		Kind   course.Kind
		Status ItemStatus
		Err    error // non-nil for StatusSkipped and StatusFailed
	}

	// WeekResult records the outcome of posting one week block.
	WeekResult struct {
		Week       int
		ModuleID   int64
		ModuleName string
		Items      []ItemResult
	}
)

// Failed reports whether any item in the result did not get created.
func (r WeekResult) Failed() bool {
	for _, item := range r.Items {
		if item.Status != StatusCreated {
			return true
		}
	}
	return false
}
