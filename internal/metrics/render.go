package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mycv",
			Subsystem: "render",
			Name:      "documents_total",
			Help:      "按模板统计的简历渲染次数。",
		},
		[]string{"template"},
	)

	renderPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mycv",
			Subsystem: "render",
			Name:      "pages_total",
			Help:      "按模板统计的渲染页数。",
		},
		[]string{"template"},
	)

	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mycv",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "HTML 渲染耗时分布（秒）。",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"template"},
	)

	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mycv",
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "无头浏览器导出 PDF 耗时分布（秒）。",
			Buckets:   []float64{.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"driver", "outcome"},
	)
)

// ObserveRender records one render of templateID producing pages sheets.
func ObserveRender(templateID string, pages int, elapsed time.Duration) {
	renderTotal.WithLabelValues(templateID).Inc()
	renderPages.WithLabelValues(templateID).Add(float64(pages))
	renderDuration.WithLabelValues(templateID).Observe(elapsed.Seconds())
}

// ObserveExport records one headless export.
func ObserveExport(driver string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	exportDuration.WithLabelValues(driver, outcome).Observe(elapsed.Seconds())
}
