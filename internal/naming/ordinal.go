// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strconv"
	"strings"
)

// onesWords covers 0-19; cardinal rendering indexes into it directly.
var onesWords = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

// tensWords covers the multiples of ten from 20-90. Index 0 and 1 are unused.
var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// irregularOrdinals maps cardinal words whose ordinal form is not a simple
// "th" suffix.
var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// cardinalValues maps every cardinal word to its numeric value. Scale words
// (hundred, thousand) are flagged separately in scaleValues.
var cardinalValues = map[string]int{}

// scaleValues maps multiplier words to their scale.
var scaleValues = map[string]int{
	"hundred":  100,
	"thousand": 1000,
}

// ordinalValues maps ordinal words to the numeric value they contribute.
// Scale ordinals ("hundredth", "thousandth") live in ordinalScaleValues.
var ordinalValues = map[string]int{}

// ordinalScaleValues maps ordinal scale words to their multiplier.
var ordinalScaleValues = map[string]int{
	"hundredth":  100,
	"thousandth": 1000,
}

func init() {
	for i, w := range onesWords {
		cardinalValues[w] = i
		ordinalValues[ordinalizeWord(w)] = i
	}
	for i := 2; i <= 9; i++ {
		cardinalValues[tensWords[i]] = i * 10
		ordinalValues[ordinalizeWord(tensWords[i])] = i * 10
	}
}

// ordinalizeWord converts a single cardinal word to its ordinal form:
// "one" -> "first", "twenty" -> "twentieth", "four" -> "fourth".
func ordinalizeWord(w string) string {
	if ord, ok := irregularOrdinals[w]; ok {
		return ord
	}
	if strings.HasSuffix(w, "y") {
		return w[:len(w)-1] + "ieth"
	}
	return w + "th"
}

// CardinalWords renders n (>= 0) as English cardinal words in the style of
// num2words: "one thousand two hundred and thirty-four". Numbers up to
// 999999 are supported, which is far beyond any plausible module count.
func CardinalWords(n int) string {
	if n < 0 {
		return "minus " + CardinalWords(-n)
	}
	if n < 20 {
		return onesWords[n]
	}
	if n < 100 {
		s := tensWords[n/10]
		if n%10 != 0 {
			s += "-" + onesWords[n%10]
		}
		return s
	}
	if n < 1000 {
		s := onesWords[n/100] + " hundred"
		if n%100 != 0 {
			s += " and " + CardinalWords(n%100)
		}
		return s
	}
	s := CardinalWords(n/1000) + " thousand"
	if n%1000 != 0 {
		if n%1000 < 100 {
			s += " and " + CardinalWords(n%1000)
		} else {
			s += " " + CardinalWords(n%1000)
		}
	}
	return s
}

// OrdinalWords renders n (>= 1) as English ordinal words: 1 -> "first",
// 22 -> "twenty-second", 112 -> "one hundred and twelfth".
func OrdinalWords(n int) string {
	cardinal := CardinalWords(n)

	// Ordinalize only the final word. The final word may sit after a space
	// or a hyphen ("twenty-one" -> "twenty-first").
	cut := strings.LastIndexAny(cardinal, " -")
	if cut < 0 {
		return ordinalizeWord(cardinal)
	}
	return cardinal[:cut+1] + ordinalizeWord(cardinal[cut+1:])
}

// ParseOrdinal parses an English ordinal into its numeric value. Accepted
// forms are ordinal words ("second", "twenty-first", "one hundred and
// twelfth") and digit suffix forms ("2nd", "23rd"). Cardinal-only text
// ("twenty", "7") does not parse: the final word must be ordinal.
func ParseOrdinal(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	if n, ok := parseDigitOrdinal(s); ok {
		return n, ok
	}

	// Tokenize on spaces and hyphens; "and" is filler.
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	filtered := tokens[:0]
	for _, tok := range tokens {
		if tok != "and" {
			filtered = append(filtered, tok)
		}
	}
	tokens = filtered
	if len(tokens) == 0 {
		return 0, false
	}

	// All tokens except the last must be cardinal; the last must be ordinal.
	total, current := 0, 0
	for _, tok := range tokens[:len(tokens)-1] {
		if scale, ok := scaleValues[tok]; ok {
			if scale == 1000 {
				total += max(current, 1) * scale
				current = 0
			} else {
				current = max(current, 1) * scale
			}
			continue
		}
		v, ok := cardinalValues[tok]
		if !ok {
			return 0, false
		}
		current += v
	}

	last := tokens[len(tokens)-1]
	if scale, ok := ordinalScaleValues[last]; ok {
		if scale == 1000 {
			total += max(current, 1) * scale
			current = 0
		} else {
			current = max(current, 1) * scale
		}
	} else if v, ok := ordinalValues[last]; ok {
		current += v
	} else {
		return 0, false
	}

	n := total + current
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// parseDigitOrdinal handles "2nd", "23rd", "101st" and similar.
func parseDigitOrdinal(s string) (int, bool) {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if digits, ok := strings.CutSuffix(s, suffix); ok && digits != "" {
			n, err := strconv.Atoi(digits)
			if err != nil || n <= 0 {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// ParseOrdinalPrefix recovers the ordinal number from the leading words of a
// free-text name. It tries progressively shorter whitespace-separated
// prefixes, longest first, so trailing words do not defeat the parse:
// "First class review session" -> 1. Names with no ordinal prefix report
// no match.
func ParseOrdinalPrefix(name string) (int, bool) {
	words := strings.Fields(name)
	for end := len(words); end >= 1; end-- {
		if n, ok := ParseOrdinal(strings.Join(words[:end], " ")); ok {
			return n, true
		}
	}
	return 0, false
}
