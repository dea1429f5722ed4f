// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"fmt"
	"io"

	"canvasctl/internal/course"
	"canvasctl/internal/naming"
	"canvasctl/internal/schedule"
)

// RenderWeek writes a dry-run preview of a week block: the module name it
// would create, then each item's description in input order. It makes no
// remote calls.
func RenderWeek(w io.Writer, week course.Week, sem schedule.Semester) error {
	name := naming.WeeklyModuleName(sem.WeekStart(week.Number))
	if _, err := fmt.Fprintf(w, "==== Module: %s ====\n", name); err != nil {
		return err
	}
	for _, item := range week.Items {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	return nil
}
