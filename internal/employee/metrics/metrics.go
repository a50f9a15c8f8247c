package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the employee directory.
// Tracks creations, validation failures by reason, directory size and
// operation durations.
type Metrics struct {
	EmployeesCreated   prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	EmployeesStored    prometheus.Gauge
	OperationDuration  *prometheus.HistogramVec
}

// New registers the employee metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EmployeesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "staffdir_employees_created_total",
			Help: "Total number of employees created",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdir_employee_validation_failures_total",
			Help: "Rejected create requests by reason",
		}, []string{"reason"}),
		EmployeesStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "staffdir_employees_stored",
			Help: "Number of employee records currently held in memory",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffdir_employee_operation_duration_seconds",
			Help:    "Duration of directory operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"operation"}),
	}
}

// IncrementEmployeeCreated records a successful creation.
func (m *Metrics) IncrementEmployeeCreated() {
	m.EmployeesCreated.Inc()
	m.EmployeesStored.Inc()
}

// IncrementValidationFailure records a rejected create with reason
// "invalid_date" or "underage".
func (m *Metrics) IncrementValidationFailure(reason string) {
	m.ValidationFailures.WithLabelValues(reason).Inc()
}

// ObserveOperation records the duration of operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
