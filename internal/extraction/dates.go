package extraction

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearFirstRe = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)
	dayFirstRe  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	monthOnlyRe = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})$`)
)

// NormalizeDate converts date-like strings to YYYY-MM-DD. Input it does not
// recognize is returned verbatim so callers can treat it as best-effort.
// When the separator pattern alone is ambiguous, a leading 4-digit group is
// taken to be the year.
func NormalizeDate(text string) string {
	if isoDateRe.MatchString(text) {
		return text
	}
	if m := yearFirstRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))
	}
	if m := dayFirstRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))
	}
	if m := monthOnlyRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-01", m[1], pad2(m[2]))
	}
	return text
}

func pad2(s string) string {
	n, _ := strconv.Atoi(s)
	return fmt.Sprintf("%02d", n)
}
