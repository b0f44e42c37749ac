package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDue_Weekly(t *testing.T) {
	base := date(2026, time.March, 2)
	assert.Equal(t, date(2026, time.March, 9), NextDue(CodeWeekly, base))
}

func TestNextDue_Biweekly(t *testing.T) {
	base := date(2026, time.March, 2)
	assert.Equal(t, date(2026, time.March, 16), NextDue(CodeBiweekly, base))
}

func TestNextDue_MonthlySameDay(t *testing.T) {
	assert.Equal(t, date(2026, time.April, 15), NextDue(CodeMonthlySameDay, date(2026, time.March, 15)))
}

func TestNextDue_MonthlySameDay_ClampsToMonthEnd(t *testing.T) {
	// Jan 31 -> Feb 28 in a non-leap year.
	assert.Equal(t, date(2026, time.February, 28), NextDue(CodeMonthlySameDay, date(2026, time.January, 31)))
	// Leap year keeps the 29th.
	assert.Equal(t, date(2028, time.February, 29), NextDue(CodeMonthlySameDay, date(2028, time.January, 31)))
}

func TestNextDue_MonthlySameDay_DecemberWraps(t *testing.T) {
	assert.Equal(t, date(2027, time.January, 10), NextDue(CodeMonthlySameDay, date(2026, time.December, 10)))
}

func TestNextDue_NthWeekday(t *testing.T) {
	// 2nd Tuesday of April 2026 is the 14th (April 1 is a Wednesday).
	got := NextDue("monthly_nth_wd:2:1", date(2026, time.March, 10))
	assert.Equal(t, date(2026, time.April, 14), got)
	assert.Equal(t, time.Tuesday, got.Weekday())

	// 1st Monday of April 2026 is the 6th.
	got = NextDue("monthly_nth_wd:1:0", date(2026, time.March, 2))
	assert.Equal(t, date(2026, time.April, 6), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestNextDue_NthWeekday_ClampsPastMonthEnd(t *testing.T) {
	// A 5th Friday does not always exist; the date clamps to month end.
	got := NextDue("monthly_nth_wd:5:4", date(2026, time.January, 30))
	assert.Equal(t, time.February, got.Month())
	assert.LessOrEqual(t, got.Day(), 28)
}

func TestNextDue_MalformedNthFallsBackToMonthly(t *testing.T) {
	base := date(2026, time.March, 15)
	assert.Equal(t, addMonthClamped(base), NextDue("monthly_nth_wd:bad", base))
	assert.Equal(t, addMonthClamped(base), NextDue("monthly_nth_wd:0:9", base))
}

func TestNextDue_UnknownCodeReturnsBase(t *testing.T) {
	base := date(2026, time.March, 15)
	assert.Equal(t, base, NextDue("quarterly", base))
	assert.Equal(t, base, NextDue("", base))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Weekly Cleaning", Title(CodeWeekly))
	assert.Equal(t, "Biweekly Cleaning", Title(CodeBiweekly))
	assert.Equal(t, "Monthly Cleaning", Title(CodeMonthlySameDay))
	assert.Equal(t, "Monthly 2nd Tuesday Cleaning", Title("monthly_nth_wd:2:1"))
	assert.Equal(t, "Monthly Cleaning", Title("monthly_nth_wd:bad"))
	assert.Equal(t, "Cleaning", Title(""))
}
