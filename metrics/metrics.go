package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder collects build metrics for one showcase run. A build is a
// short-lived CI job with nothing to scrape, so metrics are pushed to a
// Pushgateway after the run instead of being served.
type Recorder struct {
	registry *prometheus.Registry

	submissionsRendered *prometheus.CounterVec
	submissionsSkipped  *prometheus.CounterVec
	fetchDuration       prometheus.Gauge
	lastSuccess         prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submissionsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "showcase_submissions_rendered_total",
			Help: "Submissions rendered on the showcase page, per contest.",
		}, []string{"contest"}),
		submissionsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "showcase_submissions_skipped_total",
			Help: "Issues skipped during parsing, per reason.",
		}, []string{"reason"}),
		fetchDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "showcase_fetch_duration_seconds",
			Help: "Wall time spent fetching issues, reactions and comments.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "showcase_last_successful_build_timestamp_seconds",
			Help: "Unix time of the last successful showcase build.",
		}),
	}
	r.registry.MustRegister(r.submissionsRendered, r.submissionsSkipped, r.fetchDuration, r.lastSuccess)
	return r
}

func (r *Recorder) Rendered(contestID string, count int) {
	r.submissionsRendered.WithLabelValues(contestID).Add(float64(count))
}

func (r *Recorder) Skipped(reason string) {
	r.submissionsSkipped.WithLabelValues(reason).Inc()
}

func (r *Recorder) FetchDuration(d time.Duration) {
	r.fetchDuration.Set(d.Seconds())
}

func (r *Recorder) BuildSucceeded(now time.Time) {
	r.lastSuccess.Set(float64(now.Unix()))
}

func (r *Recorder) Push(gatewayURL string) error {
	return push.New(gatewayURL, "showcase_build").Gatherer(r.registry).Push()
}
