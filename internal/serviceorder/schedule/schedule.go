// Package schedule contains pure cadence math for recurring service
// orders. Cadence codes:
//
//	weekly                    every 7 days
//	biweekly                  every 14 days
//	monthly_same_day          same day next month, clamped to month end
//	monthly_nth_wd:<n>:<w>    nth weekday of the next month; w counts
//	                          from 0 = Monday
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	CodeWeekly         = "weekly"
	CodeBiweekly       = "biweekly"
	CodeMonthlySameDay = "monthly_same_day"

	monthlyNthPrefix = "monthly_nth_wd:"
)

// Title derives a human order title from a cadence code.
func Title(code string) string {
	switch {
	case code == "":
		return "Cleaning"
	case code == CodeWeekly:
		return "Weekly Cleaning"
	case code == CodeBiweekly:
		return "Biweekly Cleaning"
	case code == CodeMonthlySameDay:
		return "Monthly Cleaning"
	case strings.HasPrefix(code, monthlyNthPrefix):
		n, w, err := parseNth(code)
		if err != nil {
			return "Monthly Cleaning"
		}
		nth := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th"}[n]
		if nth == "" {
			nth = fmt.Sprintf("%dth", n)
		}
		weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
		return fmt.Sprintf("Monthly %s %s Cleaning", nth, weekdays[w])
	default:
		return "Cleaning"
	}
}

// NextDue computes the next due date after base for the given cadence.
// An empty or unrecognized code returns base unchanged.
func NextDue(code string, base time.Time) time.Time {
	switch {
	case code == CodeWeekly:
		return base.AddDate(0, 0, 7)
	case code == CodeBiweekly:
		return base.AddDate(0, 0, 14)
	case code == CodeMonthlySameDay:
		return addMonthClamped(base)
	case strings.HasPrefix(code, monthlyNthPrefix):
		n, w, err := parseNth(code)
		if err != nil {
			return addMonthClamped(base)
		}
		y, m := base.Year(), int(base.Month())
		if m == 12 {
			y, m = y+1, 1
		} else {
			m++
		}
		return nthWeekdayOfMonth(y, time.Month(m), w, n, base.Location())
	default:
		return base
	}
}

func parseNth(code string) (n, weekday int, err error) {
	parts := strings.Split(code, ":")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("malformed cadence %q", code)
	}
	n, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	weekday, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, err
	}
	if n < 1 || weekday < 0 || weekday > 6 {
		return 0, 0, fmt.Errorf("cadence out of range %q", code)
	}
	return n, weekday, nil
}

func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func addMonthClamped(d time.Time) time.Time {
	y, m := d.Year(), int(d.Month())
	if m == 12 {
		y, m = y+1, 1
	} else {
		m++
	}
	day := d.Day()
	if dim := daysInMonth(y, time.Month(m)); day > dim {
		day = dim
	}
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, d.Location())
}

// nthWeekdayOfMonth uses Monday-based weekday indexing.
func nthWeekdayOfMonth(y int, m time.Month, weekdayIdx, n int, loc *time.Location) time.Time {
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	firstWeekday := (int(first.Weekday()) + 6) % 7 // Go Sunday=0 → Monday=0
	offset := (weekdayIdx - firstWeekday + 7) % 7
	day := 1 + offset + (n-1)*7
	if dim := daysInMonth(y, m); day > dim {
		day = dim
	}
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}
