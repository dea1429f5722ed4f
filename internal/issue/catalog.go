// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// ID identifies a known failure mode with dedicated help text.
type ID int

// Known issue identifiers.
const (
	CourseFileNotFoundID ID = iota + 1
	TokenMissingID
	ConfigLoadFailedID
	ModuleNotFoundID
	RemoteFileNotFoundID
	AssignmentNotFoundID
	UploadFailedID
)

type (
	// Issue pairs a known failure mode with Markdown help text shown to the
	// user when it occurs.
	Issue struct {
		id    ID
		mdMsg string
	}

	// Renderer renders Markdown help text for terminal display.
	Renderer interface {
		Render(in string) (string, error)
	}

	// GlamourRenderer renders Markdown with glamour's automatic style.
	GlamourRenderer struct{}
)

// Render implements Renderer.
func (GlamourRenderer) Render(in string) (string, error) {
	return glamour.Render(in, "auto")
}

// ID returns the issue identifier.
func (i Issue) ID() ID {
	return i.id
}

// Rendered returns the issue's help text rendered for the terminal. On
// render failure the raw Markdown is returned, never an empty string.
func (i Issue) Rendered(r Renderer) string {
	out, err := r.Render(i.mdMsg)
	if err != nil {
		return i.mdMsg
	}
	return out
}

// catalog holds the help text for every known issue.
var catalog = map[ID]Issue{
	CourseFileNotFoundID: {
		id: CourseFileNotFoundID,
		mdMsg: "## Course file not found\n\n" +
			"`canvasctl` looks for `course.yaml` in the current directory and its ancestors.\n\n" +
			"- Run from inside a course directory, or\n" +
			"- point at a file explicitly: `canvasctl --course path/to/course.yaml`",
	},
	TokenMissingID: {
		id: TokenMissingID,
		mdMsg: "## Canvas token missing\n\n" +
			"Set the `CANVAS_TOKEN` environment variable or add `canvas.token` to the\n" +
			"canvasctl config file. Generate a token under\n" +
			"*Canvas → Account → Settings → New Access Token*.",
	},
	ConfigLoadFailedID: {
		id: ConfigLoadFailedID,
		mdMsg: "## Configuration failed to load\n\n" +
			"The canvasctl config file exists but could not be parsed.\n" +
			"Check the YAML syntax, or move the file aside to fall back to defaults.",
	},
	ModuleNotFoundID: {
		id: ModuleNotFoundID,
		mdMsg: "## Module not found\n\n" +
			"The weekly module does not exist on Canvas yet. `update` only touches\n" +
			"existing modules; use `post` to create it first.",
	},
	RemoteFileNotFoundID: {
		id: RemoteFileNotFoundID,
		mdMsg: "## Remote file not found\n\n" +
			"A `file` item names a course file that is not on Canvas. Upload it first\n" +
			"(`canvasctl upload`) or switch the item to `local_file`.",
	},
	AssignmentNotFoundID: {
		id: AssignmentNotFoundID,
		mdMsg: "## Assignment not found\n\n" +
			"An `assignment` item names an assignment that does not exist. Create it on\n" +
			"Canvas first, or switch the item to `assignment_create`.",
	},
	UploadFailedID: {
		id: UploadFailedID,
		mdMsg: "## File upload failed\n\n" +
			"The Canvas upload flow did not complete. Check the local file path and\n" +
			"your course storage quota.",
	},
}

// Lookup returns the Issue for a known identifier.
func Lookup(id ID) (Issue, error) {
	iss, ok := catalog[id]
	if !ok {
		return Issue{}, fmt.Errorf("issue: unknown id %d", id)
	}
	return iss, nil
}
