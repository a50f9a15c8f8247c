package domain

import (
	"github.com/google/uuid"

	dErrors "staffdir/pkg/domain-errors"
)

// EmployeeID identifies an employee record. It is a random (v4) UUID assigned
// once at creation; callers must not assume any ordering between IDs.
type EmployeeID uuid.UUID

// NewEmployeeID returns a fresh random identifier.
func NewEmployeeID() EmployeeID {
	return EmployeeID(uuid.New())
}

// ParseEmployeeID parses s at a trust boundary. Empty and malformed UUIDs are
// rejected with CodeInvalidInput. The nil UUID is well formed and parses; it
// is never issued, so lookups with it simply find nothing.
func ParseEmployeeID(s string) (EmployeeID, error) {
	parsed, err := parseUUID(s, "employee ID")
	if err != nil {
		return EmployeeID{}, err
	}
	return EmployeeID(parsed), nil
}

func (id EmployeeID) String() string {
	return uuid.UUID(id).String()
}

func (id EmployeeID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id EmployeeID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *EmployeeID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = EmployeeID(u)
	return nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	return parsed, nil
}
