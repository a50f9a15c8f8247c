package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffdir/internal/employee/models"
	id "staffdir/pkg/domain"
	dErrors "staffdir/pkg/domain-errors"
	"staffdir/pkg/platform/httputil"
	"staffdir/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the directory operations the HTTP layer needs.
type Service interface {
	Create(ctx context.Context, input models.EmployeeInput) (*models.Employee, error)
	Get(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)
	List(ctx context.Context, opts models.ListOptions) ([]*models.Employee, error)
}

// Handler binds paths, queries and bodies to the directory service and maps
// its outcomes to status codes. It holds no business rules.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new employee Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// Register registers the directory routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/user", h.handleListEmployees)
	r.Post("/user", h.handleCreateEmployee)
	r.Get("/user/{id}", h.handleGetEmployee)
}

// maxCreateBodyBytes caps the create payload; a valid one is well under 1 KiB.
const maxCreateBodyBytes = 16 << 10

const landingPage = "<h1>Employee Directory</h1>"

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "serving root page")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(landingPage))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.CreateEmployeeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create employee request",
			"request_id", requestID,
			"error", err.Error(),
		)
		msg := "invalid request body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "request body too large"
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, msg))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "invalid create employee request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	employee, err := h.service.Create(ctx, req.ToInput())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create employee", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid employee id",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	employee, err := h.service.Get(ctx, employeeID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get employee", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := parseListOptions(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid pagination",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	employees, err := h.service.List(ctx, opts)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list employees", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, employees)
}

// parseListOptions reads the optional offset and limit query parameters.
func parseListOptions(r *http.Request) (models.ListOptions, error) {
	var opts models.ListOptions
	query := r.URL.Query()

	if query.Has("offset") {
		offset, err := parseNonNegative(query.Get("offset"), "offset")
		if err != nil {
			return opts, err
		}
		opts.Offset = offset
	}
	if query.Has("limit") {
		limit, err := parseNonNegative(query.Get("limit"), "limit")
		if err != nil {
			return opts, err
		}
		opts.Limit = &limit
	}
	return opts, nil
}

func parseNonNegative(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, name+" must be a non-negative integer")
	}
	return n, nil
}

// writeServiceError logs client-caused failures at warn and everything else
// at error before writing the envelope.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := requestcontext.RequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
			"reason", rejectionReason(err),
		)
	}
	httputil.WriteError(w, err)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, models.ErrUnderage):
		return "underage"
	default:
		return string(dErrors.CodeOf(err))
	}
}
