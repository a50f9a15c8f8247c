// Package store holds the employee directory's storage backends.
package store

import (
	"context"
	"sync"

	"staffdir/internal/employee/models"
	id "staffdir/pkg/domain"
	"staffdir/pkg/platform/sentinel"
)

// InMemory keeps employees in a map guarded by a reader-writer lock.
// Readers share the lock; Create holds it exclusively only for the insert.
// Records are stored and returned by value so callers never alias stored state.
type InMemory struct {
	mu        sync.RWMutex
	employees map[id.EmployeeID]models.Employee
}

func NewInMemory() *InMemory {
	return &InMemory{employees: make(map[id.EmployeeID]models.Employee)}
}

// Create inserts employee. An ID that is already present is never overwritten.
func (s *InMemory) Create(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.employees[employee.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.employees[employee.ID] = *employee
	return nil
}

func (s *InMemory) FindByID(_ context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if employee, ok := s.employees[employeeID]; ok {
		return &employee, nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns a window over a snapshot of the map in its natural iteration
// order, which is unspecified and may differ between calls.
func (s *InMemory) List(_ context.Context, opts models.ListOptions) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	remaining := len(s.employees) - opts.Offset
	if remaining < 0 {
		remaining = 0
	}
	if opts.Limit != nil && *opts.Limit < remaining {
		remaining = *opts.Limit
	}

	result := make([]*models.Employee, 0, remaining)
	skipped := 0
	for _, employee := range s.employees {
		if len(result) == remaining {
			break
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		result = append(result, &employee)
	}
	return result, nil
}
