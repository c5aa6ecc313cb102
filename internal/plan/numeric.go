package plan

import (
	"strconv"
	"strings"
)

// LeadingNumber extracts the first numeric token from a free-text
// field such as "30 min", "60-70%" or "12.5 kg". Many plan fields are
// intentionally free text, so absence of a number is normal: the
// second return is false and no error is ever produced.
func LeadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot && end > 0 {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	// A trailing dot ("30.") is not part of the token.
	token := strings.TrimSuffix(s[:end], ".")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
