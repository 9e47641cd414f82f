package domain

import "time"

// MonthNames is the canonical ordered list of Spanish month names used
// everywhere a month is named, bucketed or counted. The booking sheet
// stores months by these exact names.
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthIndex returns the zero-based calendar index for a canonical month
// name, or false if the name is not one of the twelve.
func MonthIndex(name string) (int, bool) {
	for i, m := range MonthNames {
		if m == name {
			return i, true
		}
	}
	return 0, false
}

// MonthShort returns the three-letter chart label for a canonical month name.
func MonthShort(name string) string {
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// MonthOfTime returns the canonical month name for a point in time.
func MonthOfTime(t time.Time) string {
	return MonthNames[int(t.Month())-1]
}

// IsLeapYear implements the Gregorian leap-year rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 366 for leap years, 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the calendar length of the month at the given
// zero-based index, accounting for leap years.
func DaysInMonth(year, monthIndex int) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
