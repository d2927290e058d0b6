package format

import "fmt"

// FmtScore formats a 0-1 score as the usual 0-100 display value, or a dash
// for audits that do not score.
func FmtScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *score*100)
}

// FmtMillis formats a millisecond value, switching to seconds at 1000 ms.
func FmtMillis(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1f s", ms/1000)
	}
	return fmt.Sprintf("%.0f ms", ms)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PassMark returns "✓" for a passing score, "✗" for a failing one and " "
// for a missing one. The pass threshold matches the report convention of
// 0.9.
func PassMark(score *float64) string {
	if score == nil {
		return " "
	}
	if *score >= 0.9 {
		return "✓"
	}
	return "✗"
}
