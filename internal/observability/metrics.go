package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activitytrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, labelled by method and response status.",
	}, []string{"method", "status"})
	collectionGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activitytrack",
		Subsystem: "store",
		Name:      "collection_size",
		Help:      "Number of activities in the persisted collection.",
	})
	persistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activitytrack",
		Subsystem: "store",
		Name:      "last_persist_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful collection write.",
	})
)

func init() {
	prometheus.MustRegister(requestCounter, collectionGauge, persistGauge)
}

// RecordPersisted updates the persistence watermark after a successful write.
func RecordPersisted(size int) {
	collectionGauge.Set(float64(size))
	persistGauge.Set(float64(time.Now().Unix()))
}

// Middleware counts every handled request by method and response status.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		requestCounter.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
