package scoring

import (
	"math"
	"strings"
)

// ValidLetter reports whether s is one of the four option letters.
// Letters are compared case-sensitively; use NormalizeLetter first.
func ValidLetter(s string) bool {
	switch s {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

// NormalizeLetter trims and upper-cases a caller-supplied option letter.
func NormalizeLetter(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Judge compares a selected letter against the answer key.
func Judge(selected, correct string) bool {
	return selected == correct
}

// Summary is the derived score of an attempt. Percentage is nil when no
// answers were recorded: an empty attempt has no score, not a 0% one.
type Summary struct {
	CorrectCount int
	TotalCount   int
	Percentage   *float64
}

// Summarize derives the aggregate score from the two counters. The percentage
// is rounded half-up to two decimals (2 of 3 correct reports 66.67).
func Summarize(correct, total int) Summary {
	s := Summary{CorrectCount: correct, TotalCount: total}
	if total > 0 {
		pct := math.Round(float64(correct)/float64(total)*100*100) / 100
		s.Percentage = &pct
	}
	return s
}
