package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// their execution time, labeled by the message path and the ABCI result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ trinity.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer. A nil registerer does not register the collectors, which
// is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trinity",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trinity",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"phase", "path"}),
	}
	if reg != nil {
		reg.MustRegister(m.txs, m.duration)
	}
	return m
}

// Check records the result of the transaction check.
func (m *Metrics) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver records the result of the transaction delivery.
func (m *Metrics) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(phase string, tx trinity.Tx, start time.Time, err error) {
	path := trinity.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == 0 {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
