package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	employeemetrics "staffdir/internal/employee/metrics"
	"staffdir/internal/employee/models"
	id "staffdir/pkg/domain"
	dErrors "staffdir/pkg/domain-errors"
	audit "staffdir/pkg/platform/audit"
	"staffdir/pkg/platform/sentinel"
	"staffdir/pkg/requestcontext"
)

const tracerName = "staffdir/internal/employee/service"

// Store is the directory's storage contract. Implementations must make Create
// atomic with respect to concurrent reads and return copies from reads.
type Store interface {
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)
	List(ctx context.Context, opts models.ListOptions) ([]*models.Employee, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the employee directory. It is the only component that mutates
// the store and owns every business rule: calendar validation, the minimum
// age check and ID assignment.
type Service struct {
	employees      Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *employeemetrics.Metrics
	tracer         trace.Tracer
	newID          func() id.EmployeeID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *employeemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New constructs a Service.
func New(employees Store, opts ...Option) *Service {
	s := &Service{
		employees: employees,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer(tracerName),
		newID:     id.NewEmployeeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates input and stores a new employee.
//
// An invalid calendar date fails with models.ErrInvalidDate; a valid date
// less than 18 years before today (request time, UTC) fails with
// models.ErrUnderage. Both carry CodeValidation. The store is untouched on
// failure.
func (s *Service) Create(ctx context.Context, input models.EmployeeInput) (*models.Employee, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "employee.Create")
	defer span.End()

	employee, err := models.NewEmployee(s.newID(), input, requestcontext.Now(ctx).UTC())
	if err != nil {
		s.recordValidationFailure(ctx, err, input)
		recordSpanError(span, err)
		return nil, err
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			err = dErrors.Wrap(err, dErrors.CodeInternal, "employee id collision")
		} else {
			err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to store employee")
		}
		s.logger.ErrorContext(ctx, "failed to store employee",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("employee.id", employee.ID.String()))

	s.logger.InfoContext(ctx, "employee created",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", employee.ID.String(),
	)
	s.emitCreated(ctx, employee)
	s.incrementCreated()
	s.observe("create", start)
	return employee, nil
}

// Get returns a copy of the employee with employeeID.
func (s *Service) Get(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "employee.Get",
		trace.WithAttributes(attribute.String("employee.id", employeeID.String())))
	defer span.End()

	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		err = wrapEmployeeErr(err)
		recordSpanError(span, err)
		return nil, err
	}
	s.observe("get", start)
	return employee, nil
}

// List returns a page of a point-in-time snapshot of the directory. Order is
// unspecified and may change between calls.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.Employee, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "employee.List",
		trace.WithAttributes(attribute.Int("list.offset", opts.Offset)))
	defer span.End()

	if err := opts.Validate(); err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	employees, err := s.employees.List(ctx, opts)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("list.returned", len(employees)))
	s.observe("list", start)
	return employees, nil
}

func wrapEmployeeErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "employee not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
}

func (s *Service) recordValidationFailure(ctx context.Context, err error, input models.EmployeeInput) {
	reason := "invalid_date"
	if errors.Is(err, models.ErrUnderage) {
		reason = "underage"
	}
	s.logger.WarnContext(ctx, "employee rejected",
		"request_id", requestcontext.RequestID(ctx),
		"reason", reason,
		"year", input.Year,
		"month", input.Month,
		"day", input.Day,
	)
	if s.metrics != nil {
		s.metrics.IncrementValidationFailure(reason)
	}
}

// emitCreated runs after the insert. A failing sink never undoes the create.
func (s *Service) emitCreated(ctx context.Context, employee *models.Employee) {
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Category:  audit.CategoryCompliance,
		Timestamp: requestcontext.Now(ctx),
		Action:    string(audit.EventEmployeeCreated),
		SubjectID: employee.ID.String(),
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"request_id", requestcontext.RequestID(ctx),
			"employee_id", employee.ID.String(),
			"error", err,
		)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementEmployeeCreated()
	}
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, start)
	}
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
