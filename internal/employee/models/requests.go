package models

import (
	dErrors "staffdir/pkg/domain-errors"
)

// CreateEmployeeRequest is the JSON body of POST /user. Every field is
// required; pointers distinguish a missing field from a zero value.
type CreateEmployeeRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	YearOfBirth  *int32  `json:"year_of_birth"`
	MonthOfBirth *int    `json:"month_of_birth"`
	DayOfBirth   *int    `json:"day_of_birth"`
}

// Validate checks that all fields are present.
func (r *CreateEmployeeRequest) Validate() error {
	switch {
	case r.FirstName == nil:
		return dErrors.New(dErrors.CodeBadRequest, "first_name is required")
	case r.LastName == nil:
		return dErrors.New(dErrors.CodeBadRequest, "last_name is required")
	case r.YearOfBirth == nil:
		return dErrors.New(dErrors.CodeBadRequest, "year_of_birth is required")
	case r.MonthOfBirth == nil:
		return dErrors.New(dErrors.CodeBadRequest, "month_of_birth is required")
	case r.DayOfBirth == nil:
		return dErrors.New(dErrors.CodeBadRequest, "day_of_birth is required")
	}
	return nil
}

// ToInput converts a validated request into service input.
func (r *CreateEmployeeRequest) ToInput() EmployeeInput {
	return EmployeeInput{
		FirstName: *r.FirstName,
		LastName:  *r.LastName,
		Year:      int(*r.YearOfBirth),
		Month:     *r.MonthOfBirth,
		Day:       *r.DayOfBirth,
	}
}
