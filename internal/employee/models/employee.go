package models

import (
	"errors"
	"time"

	id "staffdir/pkg/domain"
	dErrors "staffdir/pkg/domain-errors"
)

// MinimumAge is the legal working age checked at creation time.
const MinimumAge = 18

var (
	// ErrInvalidDate means year/month/day do not form a real calendar date.
	ErrInvalidDate = errors.New("invalid date of birth")
	// ErrUnderage means the date is valid but the person is younger than MinimumAge.
	ErrUnderage = errors.New("employee is under the minimum age")
)

// Employee is a directory record.
//
// Invariants:
//   - ID is assigned once at construction and never changes
//   - DateOfBirth is a valid calendar date
//   - The employee was at least MinimumAge years old when constructed
//
// Age is a snapshot check. A stored record is never re-validated.
type Employee struct {
	ID          id.EmployeeID `json:"id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	DateOfBirth Date          `json:"date_of_birth"`
}

// EmployeeInput is the transient payload of a create request.
type EmployeeInput struct {
	FirstName string
	LastName  string
	Year      int
	Month     int
	Day       int
}

// NewEmployee validates input against now and builds the record.
// Names are copied verbatim. An invalid calendar date is always reported as
// ErrInvalidDate, never as ErrUnderage.
func NewEmployee(employeeID id.EmployeeID, input EmployeeInput, now time.Time) (*Employee, error) {
	dob, err := NewDate(input.Year, input.Month, input.Day)
	if err != nil {
		return nil, err
	}
	if dob.AgeOn(now) < MinimumAge {
		return nil, dErrors.Wrap(ErrUnderage, dErrors.CodeValidation, "employee must be at least 18 years old")
	}
	return &Employee{
		ID:          employeeID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: dob,
	}, nil
}

// ListOptions selects a window of the directory. A nil Limit means unbounded.
type ListOptions struct {
	Offset int
	Limit  *int
}

// Validate rejects negative offsets and limits.
func (o ListOptions) Validate() error {
	if o.Offset < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "offset must be a non-negative integer")
	}
	if o.Limit != nil && *o.Limit < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "limit must be a non-negative integer")
	}
	return nil
}
