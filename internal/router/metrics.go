package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
)

// ResultMetrics exposes the summary of the latest result table as gauges.
type ResultMetrics struct {
	Mean    *prometheus.GaugeVec
	Records *prometheus.GaugeVec
	Latency *prometheus.GaugeVec
}

func NewResultMetrics(reg prometheus.Registerer) *ResultMetrics {
	m := &ResultMetrics{
		Mean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rag_eval_metric_mean",
			Help: "Mean score over successful records of the latest result table",
		}, []string{"metric"}),
		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rag_eval_records",
			Help: "Number of records in the latest result table",
		}, []string{"status"}),
		Latency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rag_eval_latency_milliseconds",
			Help: "Latency statistics of the latest result table",
		}, []string{"stage", "stat"}),
	}
	reg.MustRegister(m.Mean, m.Records, m.Latency)
	return m
}

func (m *ResultMetrics) Update(s *report.Summary) {
	means := map[string]float64{
		"ctx_recall@5": s.Means.Recall,
		"mrr@5":        s.Means.MRR,
		"map@5":        s.Means.MAP,
		"gen_em":       s.Means.GenEM,
		"gen_f1":       s.Means.GenF1,
		"e2e_em":       s.Means.E2EEM,
		"e2e_f1":       s.Means.E2EF1,
	}
	for name, v := range means {
		m.Mean.WithLabelValues(name).Set(v)
	}

	m.Records.WithLabelValues("total").Set(float64(s.Counts.Total))
	m.Records.WithLabelValues("succeeded").Set(float64(s.Counts.Succeeded))
	m.Records.WithLabelValues("failed").Set(float64(s.Counts.Failed))
	m.Records.WithLabelValues("em_hit").Set(float64(s.Counts.EMHits))

	setLatency(m.Latency, "retrieval", s.RetrievalLatency)
	setLatency(m.Latency, "generation", s.GenerationLatency)
}

func setLatency(g *prometheus.GaugeVec, stage string, st report.LatencyStats) {
	g.WithLabelValues(stage, "mean").Set(st.Mean)
	g.WithLabelValues(stage, "p50").Set(st.P50())
	g.WithLabelValues(stage, "p95").Set(st.P95())
	g.WithLabelValues(stage, "p99").Set(st.P99())
	g.WithLabelValues(stage, "max").Set(st.Max)
}

type MetricsRouter struct {
	e        *echo.Echo
	source   results.Source
	metrics  *ResultMetrics
	registry *prometheus.Registry
	handler  http.Handler
}

func NewMetricsRouter(e *echo.Echo, source results.Source) *MetricsRouter {
	registry := prometheus.NewRegistry()
	return &MetricsRouter{
		e:        e,
		source:   source,
		metrics:  NewResultMetrics(registry),
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
}

func (r *MetricsRouter) Bind() {
	r.e.GET("/metrics", r.metricsHandler)
}

// metricsHandler refreshes the gauges from the source before every scrape.
// A source that cannot be read leaves the previous values in place.
func (r *MetricsRouter) metricsHandler(c echo.Context) error {
	run, err := r.source.Load(c.Request().Context())
	if err != nil {
		slog.Warn("Failed to refresh result metrics", "error", err)
	} else {
		r.metrics.Update(report.Generate(run.Records, run.ID))
	}

	r.handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
