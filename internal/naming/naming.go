// SPDX-License-Identifier: MPL-2.0

// Package naming generates and parses Canvas module names.
//
// Two naming schemes coexist in a course: weekly modules named after the
// Monday of a semester week ("Week of September 7") and ordinal modules
// named with sequential English ordinals ("First class", "Second class").
// The parser is deliberately forgiving: ordinal names with extra trailing
// words still yield their number, so reconciliation against remote module
// lists keeps working after instructors rename things by hand.
package naming

import (
	"fmt"
	"strings"
	"time"
)

// weeklyModuleNameFormat is the display format for weekly modules.
const weeklyModuleNameFormat = "Week of %s %d"

// WeeklyModuleName renders the module name for the week containing t.
// Any day of the week yields the same name: the date is normalized to the
// week's Monday before formatting.
func WeeklyModuleName(t time.Time) string {
	monday := WeekMonday(t)
	return fmt.Sprintf(weeklyModuleNameFormat, monday.Month().String(), monday.Day())
}

// WeekMonday returns the Monday of the week containing t, preserving the
// time-of-day and location.
func WeekMonday(t time.Time) time.Time {
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// OrdinalModuleName renders the name of the n-th ordinal module:
// OrdinalModuleName(2, "class") -> "Second class". The suffix defaults to
// "class" when empty.
func OrdinalModuleName(n int, suffix string) string {
	if suffix == "" {
		suffix = "class"
	}
	words := OrdinalWords(n)
	return strings.ToUpper(words[:1]) + words[1:] + " " + suffix
}
