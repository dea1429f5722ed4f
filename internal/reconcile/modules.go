// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"context"
	"fmt"
	"time"

	"canvasctl/internal/canvas"
	"canvasctl/internal/naming"
)

// FindModuleByName returns the first module whose name matches exactly.
// Canvas search matches substrings, so results are filtered client-side.
// The bool reports whether a match was found.
func FindModuleByName(ctx context.Context, api API, courseID int64, name string) (canvas.Module, bool, error) {
	modules, err := api.ListModules(ctx, courseID, name)
	if err != nil {
		return canvas.Module{}, false, fmt.Errorf("listing modules: %w", err)
	}
	for _, m := range modules {
		if m.Name == name {
			return m, true, nil
		}
	}
	return canvas.Module{}, false, nil
}

// NextOrdinalNumber scans the course's modules for names starting with an
// ordinal word ("First class", "Twenty-third class") and returns one more
// than the highest number found. Modules without an ordinal prefix are
// ignored. With no ordinal modules at all, the next number is 1.
func NextOrdinalNumber(ctx context.Context, api API, courseID int64) (int, error) {
	modules, err := api.ListModules(ctx, courseID, "")
	if err != nil {
		return 0, fmt.Errorf("listing modules: %w", err)
	}

	highest := 0
	for _, m := range modules {
		if n, ok := naming.ParseOrdinalPrefix(m.Name); ok {
			highest = max(highest, n)
		}
	}
	return highest + 1, nil
}

// CreateWeeklyModule creates a module named for the Monday of weekStart's
// week, e.g. "Week of September 7". The module is created unconditionally;
// callers that need find-or-create semantics use FindModuleByName first.
func CreateWeeklyModule(ctx context.Context, api API, courseID int64, weekStart time.Time) (canvas.Module, error) {
	name := naming.WeeklyModuleName(weekStart)
	m, err := api.CreateModule(ctx, courseID, name, 0)
	if err != nil {
		return canvas.Module{}, fmt.Errorf("creating module %q: %w", name, err)
	}
	return m, nil
}

// CreateNextOrdinalModule creates the next ordinal-named module, e.g.
// "Fourth class" when three ordinal modules already exist.
func CreateNextOrdinalModule(ctx context.Context, api API, courseID int64, suffix string) (canvas.Module, error) {
	n, err := NextOrdinalNumber(ctx, api, courseID)
	if err != nil {
		return canvas.Module{}, err
	}

	name := naming.OrdinalModuleName(n, suffix)
	m, err := api.CreateModule(ctx, courseID, name, 0)
	if err != nil {
		return canvas.Module{}, fmt.Errorf("creating module %q: %w", name, err)
	}
	return m, nil
}

// FindItemPosition returns the 1-based position of the first item in the
// module whose title matches exactly, or 0 when no item matches.
func FindItemPosition(ctx context.Context, api API, courseID, moduleID int64, title string) (int, error) {
	items, err := api.ListModuleItems(ctx, courseID, moduleID, title)
	if err != nil {
		return 0, fmt.Errorf("listing module items: %w", err)
	}
	for _, item := range items {
		if item.Title == title {
			return item.Position, nil
		}
	}
	return 0, nil
}
