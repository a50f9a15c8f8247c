package employee

import (
	"log/slog"

	"staffdir/internal/employee/handler"
	"staffdir/internal/employee/service"
	"staffdir/internal/employee/store"
)

// Service exposes the employee directory operations.
type Service = service.Service

// Handler wires HTTP endpoints to the directory service.
type Handler = handler.Handler

// NewService constructs the directory service over a fresh in-memory store.
func NewService(opts ...service.Option) *Service {
	return service.New(store.NewInMemory(), opts...)
}

// NewHandler constructs the HTTP handler for the directory routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
