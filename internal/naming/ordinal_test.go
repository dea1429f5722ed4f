// SPDX-License-Identifier: MPL-2.0

package naming

import "testing"

func TestOrdinalWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, "fourth"},
		{5, "fifth"},
		{8, "eighth"},
		{9, "ninth"},
		{12, "twelfth"},
		{13, "thirteenth"},
		{20, "twentieth"},
		{21, "twenty-first"},
		{32, "thirty-second"},
		{40, "fortieth"},
		{50, "fiftieth"},
		{99, "ninety-ninth"},
		{100, "one hundredth"},
		{101, "one hundred and first"},
		{112, "one hundred and twelfth"},
		{1000, "one thousandth"},
	}

	for _, tt := range tests {
		if got := OrdinalWords(tt.n); got != tt.want {
			t.Errorf("OrdinalWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseOrdinal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"first", 1, true},
		{"Second", 2, true},
		{"twenty-first", 21, true},
		{"twenty first", 21, true},
		{"one hundred and twelfth", 112, true},
		{"2nd", 2, true},
		{"23rd", 23, true},
		{"101st", 101, true},
		{"", 0, false},
		{"twenty", 0, false},   // cardinal, not ordinal
		{"syllabus", 0, false}, // not a number at all
		{"zeroth", 0, false},   // ordinals start at one
	}

	for _, tt := range tests {
		got, ok := ParseOrdinal(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseOrdinal(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseOrdinalPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"Second class", 2, true},
		{"First class review", 1, true},
		{"Twenty-first class", 21, true},
		{"Unrelated Module", 0, false},
		{"Syllabus", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseOrdinalPrefix(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseOrdinalPrefix(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestOrdinalRoundTrip verifies that every generated ordinal module name
// parses back to the number it was generated from.
func TestOrdinalRoundTrip(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 50; n++ {
		name := OrdinalModuleName(n, "class")
		got, ok := ParseOrdinalPrefix(name)
		if !ok || got != n {
			t.Errorf("round-trip failed for %d: name %q parsed to (%d, %v)", n, name, got, ok)
		}
	}
}
