// Package extract pulls currency amounts and calendar dates out of arbitrary
// text fragments. Nothing here returns an error: a fragment either yields a
// value or reports it as absent.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// A currency marker (rupee sign, Rs, Rs., INR) followed by a digit group.
// Spaces are allowed after a thousands comma ("Rs 12, 000").
var amountPattern = regexp.MustCompile(`(?i)(?:₹|\bRs\.?|\bINR)[\s\x{00A0}]*(\d+(?:,[ \x{00A0}]*\d+)*(?:\.\d+)?)`)

// Amount returns the first currency-marked number in s.
func Amount(s string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parseNumber(m[1])
}

// Number parses a bare digit group such as "1,25,000.00".
func Number(s string) (float64, bool) {
	return parseNumber(s)
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
