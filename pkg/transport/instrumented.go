package transport

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// codeError labels round trips that failed before a status was received.
const codeError = "error"

// Instrumented records request counts and latencies in Prometheus metrics.
type Instrumented struct {
	next     Doer
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInstrumented wraps next and registers its metrics on reg.
func NewInstrumented(next Doer, reg prometheus.Registerer) (*Instrumented, error) {
	i := &Instrumented{
		next: next,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phiremock",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Control-plane requests sent to the Phiremock server, by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "phiremock",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of control-plane requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	if err := reg.Register(i.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(i.duration); err != nil {
		reg.Unregister(i.requests)
		return nil, err
	}
	return i, nil
}

// Do sends req through the wrapped Doer and records the outcome.
func (i *Instrumented) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := i.next.Do(req)
	i.duration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	code := codeError
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	i.requests.WithLabelValues(req.Method, code).Inc()
	return resp, err
}

// Summary aggregates the request counter.
type Summary struct {
	Total  int
	Failed int
	ByCode map[string]int
}

// Codes returns the recorded status codes in ascending order.
func (s Summary) Codes() []string {
	codes := make([]string, 0, len(s.ByCode))
	for code := range s.ByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Summary reads the current counter values. Transport failures and 4xx/5xx
// answers count as failed.
func (i *Instrumented) Summary() Summary {
	s := Summary{ByCode: map[string]int{}}

	ch := make(chan prometheus.Metric)
	go func() {
		i.requests.Collect(ch)
		close(ch)
	}()

	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			continue
		}
		n := int(pb.GetCounter().GetValue())
		var code string
		for _, lp := range pb.GetLabel() {
			if lp.GetName() == "code" {
				code = lp.GetValue()
			}
		}
		s.Total += n
		s.ByCode[code] += n
		if code == codeError {
			s.Failed += n
		} else if status, err := strconv.Atoi(code); err == nil && status >= 400 {
			s.Failed += n
		}
	}
	return s
}
