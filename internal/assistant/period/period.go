// Package period turns period phrases in a chat message into concrete date ranges.
package period

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"payroll-assistant/internal/models"
)

// DateLayout is the wire format of every range boundary.
const DateLayout = "2006-01-02"

var literalDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

var customTriggers = []string{"between", "from", "to"}

type rule struct {
	phrase  string
	resolve func(now time.Time) models.DateRange
}

// Named phrases, checked in order; the first one present wins.
var rules = []rule{
	{"this week", ThisWeek},
	{"this month", ThisMonth},
	{"this year", ThisYear},
	{"last month", LastMonth},
}

// Resolve finds the period referenced by message relative to now. The second
// result is false when no named phrase matches and no custom range with two
// literal dates is present.
func Resolve(message string, now time.Time) (models.DateRange, bool) {
	lower := strings.ToLower(message)

	for _, r := range rules {
		if strings.Contains(lower, r.phrase) {
			return r.resolve(now), true
		}
	}

	for _, trigger := range customTriggers {
		if strings.Contains(lower, trigger) {
			return CustomRange(lower)
		}
	}
	return models.DateRange{}, false
}

// ThisWeek is the Sunday to Saturday week containing now.
func ThisWeek(now time.Time) models.DateRange {
	y, m, d := now.Date()
	start := time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, d-int(now.Weekday())+6, 0, 0, 0, 0, now.Location())
	return newRange(start, end, "This Week")
}

func ThisMonth(now time.Time) models.DateRange {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location())
	return newRange(start, end, "This Month")
}

func ThisYear(now time.Time) models.DateRange {
	y := now.Year()
	start := time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(y, time.December, 31, 0, 0, 0, 0, now.Location())
	return newRange(start, end, "This Year")
}

// LastMonth covers the whole previous calendar month; January rolls back to
// December of the previous year through time.Date normalisation.
func LastMonth(now time.Time) models.DateRange {
	y, m, _ := now.Date()
	start := time.Date(y, m-1, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, 0, 0, 0, 0, 0, now.Location())
	return newRange(start, end, "Last Month")
}

// CustomRange takes the first two YYYY-MM-DD substrings in order of
// appearance. The dates are passed through verbatim: they are not parsed,
// checked for calendar validity or reordered.
func CustomRange(message string) (models.DateRange, bool) {
	dates := literalDate.FindAllString(message, 2)
	if len(dates) < 2 {
		return models.DateRange{}, false
	}
	return models.DateRange{
		Start: dates[0],
		End:   dates[1],
		Label: fmt.Sprintf("Custom Period (%s to %s)", dates[0], dates[1]),
	}, true
}

func newRange(start, end time.Time, label string) models.DateRange {
	return models.DateRange{
		Start: start.Format(DateLayout),
		End:   end.Format(DateLayout),
		Label: label,
	}
}
