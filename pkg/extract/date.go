package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const months = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

var (
	// 21/11/2025, 21-11-25
	numericDate = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	// 01-Nov-2025, 1 Nov 2025, 1st November, 2025
	dayMonthYear = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?[-\s]?(` + months + `)[a-z]*\.?[-\s,]*(\d{2,4})\b`)
	// Nov 05, 2025
	monthDayYear = regexp.MustCompile(`(?i)\b(` + months + `)[a-z]*\.?[-\s]?(\d{1,2})(?:st|nd|rd|th)?(?:,\s*|[-\s]+)(\d{2,4})\b`)

	ordinal = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)$`)
)

// Layouts tried over token windows when no structured pattern matched.
var (
	fuzzyLayouts = []string{
		"2 Jan 2006",
		"2 January 2006",
		"Jan 2 2006",
		"January 2 2006",
		"2-Jan-2006",
		"2006-01-02",
		"2006/01/02",
		"2.1.2006",
	}
	yearlessLayouts = []string{
		"2 Jan",
		"2 January",
		"Jan 2",
		"January 2",
		"2-Jan",
	}
)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// DateExtractor finds calendar dates in text. Now supplies the reference year
// for two-digit and missing years.
type DateExtractor struct {
	Now func() time.Time
}

var defaultDates = DateExtractor{Now: time.Now}

// Date returns the first recognizable date in s as YYYY-MM-DD.
func Date(s string) (string, bool) {
	return defaultDates.Extract(s)
}

// Extract tries numeric dates, then month-name dates, then a fuzzy scan.
// Ambiguous day/month order is always read day-first.
func (e DateExtractor) Extract(s string) (string, bool) {
	ref := e.now()

	for _, m := range structured(numericDate, s) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if iso, ok := civil(m[3], month, day, ref); ok {
			return iso, true
		}
	}

	for _, m := range structured(dayMonthYear, s) {
		day, _ := strconv.Atoi(m[1])
		if iso, ok := civil(m[3], monthIndex[strings.ToLower(m[2])], day, ref); ok {
			return iso, true
		}
	}

	for _, m := range structured(monthDayYear, s) {
		day, _ := strconv.Atoi(m[2])
		if iso, ok := civil(m[3], monthIndex[strings.ToLower(m[1])], day, ref); ok {
			return iso, true
		}
	}

	return fuzzy(s, ref)
}

// structured returns the submatches of re in s, dropping any whose year is
// followed by ':' since that year is the hour of a clock time.
func structured(re *regexp.Regexp, s string) [][]string {
	var out [][]string
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		if loc[1] < len(s) && s[loc[1]] == ':' {
			continue
		}
		m := make([]string, len(loc)/2)
		for i := range m {
			if loc[2*i] >= 0 {
				m[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		out = append(out, m)
	}
	return out
}

func (e DateExtractor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// fuzzy slides 3, 2 and 1 token windows over s and returns the leftmost
// window that parses with one of the known layouts.
func fuzzy(s string, ref time.Time) (string, bool) {
	caser := cases.Title(language.English)
	tokens := tokenize(s)
	for i := range tokens {
		for size := 3; size >= 1; size-- {
			if i+size > len(tokens) {
				continue
			}
			window := caser.String(strings.Join(tokens[i:i+size], " "))
			for _, layout := range fuzzyLayouts {
				if t, err := time.Parse(layout, window); err == nil {
					return t.Format(time.DateOnly), true
				}
			}
			for _, layout := range yearlessLayouts {
				t, err := time.Parse(layout, window)
				if err != nil {
					continue
				}
				if iso, ok := civilDate(ref.Year(), int(t.Month()), t.Day()); ok {
					return iso, true
				}
			}
		}
	}
	return "", false
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '(' || r == ')'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, ".:")
		if m := ordinal.FindStringSubmatch(strings.ToLower(f)); m != nil {
			f = m[1]
		}
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func civil(yearText string, month, day int, ref time.Time) (string, bool) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return "", false
	}
	switch len(yearText) {
	case 2:
		year = pivotYear(year, ref)
	case 4:
	default:
		return "", false
	}
	return civilDate(year, month, day)
}

// pivotYear places a two-digit year within 50 years of the reference year.
func pivotYear(yy int, ref time.Time) int {
	year := ref.Year()/100*100 + yy
	switch {
	case year >= ref.Year()+50:
		year -= 100
	case year < ref.Year()-50:
		year += 100
	}
	return year
}

func civilDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return t.Format(time.DateOnly), true
}
