package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	dErrors "staffdir/pkg/domain-errors"
)

// Date is a calendar date on the proleptic Gregorian calendar with no time
// or zone component. The zero value is not a valid date.
//
// Invariants (enforced by NewDate):
//   - Month is in 1..12
//   - Day is in 1..DaysIn(Year, Month), leap years included
//   - Year is unrestricted; zero and negative years are valid
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates year/month/day as a real calendar date.
// It fails with ErrInvalidDate (code validation_error) otherwise.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 || day < 1 || day > DaysIn(year, time.Month(month)) {
		return Date{}, dErrors.Wrap(ErrInvalidDate, dErrors.CodeValidation,
			fmt.Sprintf("%d-%d-%d is not a valid calendar date", year, month, day))
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// AgeOn returns the number of whole years between d and the calendar date of
// now. A birthday not yet reached in now's year does not count.
func (d Date) AgeOn(now time.Time) int {
	age := now.Year() - d.Year
	if now.Month() < d.Month || (now.Month() == d.Month && now.Day() < d.Day) {
		age--
	}
	return age
}

// String formats d as YYYY-MM-DD. Years outside 0..9999 carry an explicit sign.
func (d Date) String() string {
	switch {
	case d.Year < 0:
		return fmt.Sprintf("-%04d-%02d-%02d", -d.Year, d.Month, d.Day)
	case d.Year > 9999:
		return fmt.Sprintf("+%d-%02d-%02d", d.Year, d.Month, d.Day)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// ParseDate parses the String form back into a validated Date.
func ParseDate(s string) (Date, error) {
	sign := 1
	rest := s
	switch {
	case strings.HasPrefix(rest, "-"):
		sign, rest = -1, rest[1:]
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 3 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, dErrors.Wrap(ErrInvalidDate, dErrors.CodeValidation, "date must be formatted as YYYY-MM-DD")
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Date{}, dErrors.Wrap(ErrInvalidDate, dErrors.CodeValidation, "date must be formatted as YYYY-MM-DD")
		}
		nums[i] = n
	}
	return NewDate(sign*nums[0], nums[1], nums[2])
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
