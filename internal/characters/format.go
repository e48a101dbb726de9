package characters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName turns free text into the path identifier of a character:
// whitespace is collapsed, every run of letters title-cased and the result
// path-escaped, so "dread  nought" becomes "Dread%20Nought" and "o'brien"
// becomes "O%27Brien".
func NormalizeName(name string) string {
	joined := strings.Join(strings.Fields(name), " ")
	return url.PathEscape(titleLetterRuns(joined))
}

// titleLetterRuns capitalizes the first letter after any non-letter and lowercases the rest
func titleLetterRuns(s string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

// SplitAge decomposes played seconds into days, hours, minutes and seconds
func SplitAge(age int64) (days, hours, minutes, seconds int64) {
	hours, remainder := age/3600, age%3600
	minutes, seconds = remainder/60, remainder%60
	days, hours = hours/24, hours%24
	return days, hours, minutes, seconds
}

// FormatAge renders played seconds. Days are omitted when zero; units are never singularized.
func FormatAge(age int64) string {
	days, hours, minutes, seconds := SplitAge(age)
	if days > 0 {
		return fmt.Sprintf("%d days, %d hours, %d minutes, and %d seconds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%d hours, %d minutes, and %d seconds", hours, minutes, seconds)
}

// DeathsPerHour is deaths over played hours rounded to one decimal. Exact halves
// round to even, so 0.25 becomes 0.2 and 0.75 becomes 0.8.
func DeathsPerHour(deaths int, age int64) (float64, error) {
	if age <= 0 {
		return 0, ErrNoPlaytime
	}
	perHour := float64(deaths) / (float64(age) / 3600)
	return strconv.ParseFloat(strconv.FormatFloat(perHour, 'f', 1, 64), 64)
}

// Dedupe groups identical names in first-appearance order. A name seen k>1 times
// is rendered once as "Name xk".
func Dedupe(names []string) []string {
	counts := make(map[string]int, len(names))
	var order []string
	for _, name := range names {
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]string, 0, len(order))
	for _, name := range order {
		if n := counts[name]; n > 1 {
			out = append(out, fmt.Sprintf("%s x%d", name, n))
		} else {
			out = append(out, name)
		}
	}
	return out
}

// Ordinal returns the English suffix for n. 11, 12 and 13 are not special-cased.
func Ordinal(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
