package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"austender/internal/models"
)

var (
	agencySpendDesc = prometheus.NewDesc(
		"spending_agency_total_aud",
		"Total contract value in AUD by agency",
		[]string{"agency"},
		nil,
	)

	dbErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spending_db_errors_total",
			Help: "Data store failures seen while serving requests, by kind",
		},
		[]string{"kind"},
	)
)

// Data store error kinds.
const (
	KindUnavailable = "unavailable"
	KindQuery       = "query"
)

// TotalsSource supplies per-agency totals. *db.DB satisfies it.
type TotalsSource interface {
	DepartmentTotals(ctx context.Context) ([]models.DepartmentTotal, error)
}

// SpendCollector is a custom Prometheus collector that reads agency totals
// from the database on each scrape.
type SpendCollector struct {
	source  TotalsSource
	timeout time.Duration
}

// NewSpendCollector creates a collector backed by source.
func NewSpendCollector(source TotalsSource) *SpendCollector {
	return &SpendCollector{source: source, timeout: 10 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *SpendCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- agencySpendDesc
}

// Collect queries the database for agency totals and emits them as gauges.
func (c *SpendCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	totals, err := c.source.DepartmentTotals(ctx)
	if err != nil {
		slog.Error("failed to collect agency spend metrics", "error", err)
		return
	}
	for _, t := range totals {
		ch <- prometheus.MustNewConstMetric(
			agencySpendDesc,
			prometheus.GaugeValue,
			t.TotalSpend.InexactFloat64(),
			t.Name,
		)
	}
}

var initOnce sync.Once

// Init registers the custom collector and the error counter.
// Must be called once at startup.
func Init(source TotalsSource) {
	initOnce.Do(func() {
		prometheus.MustRegister(NewSpendCollector(source), dbErrors)
	})
}

// RecordDBError counts a data store failure of the given kind.
func RecordDBError(kind string) {
	dbErrors.WithLabelValues(kind).Inc()
}
