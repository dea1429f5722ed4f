// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"canvasctl/internal/canvas"
	"canvasctl/internal/config"
	"canvasctl/internal/course"
	"canvasctl/internal/issue"
	"canvasctl/internal/reconcile"
)

func TestClassify_KnownFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.ID
	}{
		{
			name: "course file missing",
			err:  fmt.Errorf("loading course: %w", course.ErrNotFound),
			want: issue.CourseFileNotFoundID,
		},
		{
			name: "token missing",
			err:  fmt.Errorf("creating canvas client: %w", config.ErrTokenMissing),
			want: issue.TokenMissingID,
		},
		{
			name: "config unparsable",
			err:  fmt.Errorf("startup: %w", config.ErrInvalidConfigFile),
			want: issue.ConfigLoadFailedID,
		},
		{
			name: "weekly module missing",
			err:  fmt.Errorf("\"Week of September 7\": %w", reconcile.ErrModuleNotFound),
			want: issue.ModuleNotFoundID,
		},
		{
			name: "remote file missing among joined item errors",
			err: fmt.Errorf("some items were not posted: %w", errors.Join(
				fmt.Errorf("notes.pdf: %w", reconcile.ErrFileNotFound),
			)),
			want: issue.RemoteFileNotFoundID,
		},
		{
			name: "assignment missing",
			err:  fmt.Errorf("Homework 1: %w", reconcile.ErrAssignmentNotFound),
			want: issue.AssignmentNotFoundID,
		},
		{
			name: "upload failed",
			err:  fmt.Errorf("uploading notes.pdf: %w", canvas.ErrUploadFailed),
			want: issue.UploadFailedID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := classify(tt.err)
			if !ok {
				t.Fatalf("classify(%v) found no issue", tt.err)
			}
			if got != tt.want {
				t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassify_UnknownError(t *testing.T) {
	t.Parallel()

	if id, ok := classify(errors.New("connection reset")); ok {
		t.Errorf("classify of an unknown error = %d, want no match", id)
	}
}

func TestHelpFor_RendersCatalogHelp(t *testing.T) {
	t.Parallel()

	help, ok := helpFor(fmt.Errorf("\"Week of September 7\": %w", reconcile.ErrModuleNotFound))
	if !ok {
		t.Fatal("expected help for a missing weekly module")
	}
	if !strings.Contains(help, "Module not found") {
		t.Errorf("help = %q, want the module help text", help)
	}
}

func TestHelpFor_NoHelpForUnknownError(t *testing.T) {
	t.Parallel()

	if help, ok := helpFor(errors.New("connection reset")); ok {
		t.Errorf("helpFor of an unknown error = %q, want no help", help)
	}
}
