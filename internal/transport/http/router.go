package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffdir/internal/platform/metrics"
	"staffdir/internal/platform/middleware"
	"staffdir/pkg/platform/httputil"
	"staffdir/pkg/platform/middleware/requesttime"
)

const defaultRequestTimeout = 15 * time.Second

// Registrar mounts a feature's routes on the shared router.
type Registrar interface {
	Register(r chi.Router)
}

// Dependencies are the collaborators the router needs. Metrics and Gatherer
// may be nil, which disables latency recording and the /metrics endpoint.
type Dependencies struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	Features       []Registrar
}

// NewRouter builds the chi router with the shared middleware chain, the
// operational endpoints and every feature's routes.
func NewRouter(deps Dependencies) chi.Router {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.LatencyMiddleware(deps.Metrics))

	r.Get("/health", handleHealth)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, feature := range deps.Features {
		feature.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
