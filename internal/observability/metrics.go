package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики генерации занятий. Регистрируются в default-реестре,
// /metrics отдаёт их через promhttp.
var (
	LessonsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lessons_generated_total",
		Help: "Number of lessons materialized from recurring schedules.",
	})

	LessonsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lessons_skipped_total",
		Help: "Number of lesson dates skipped because they already existed.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})
)
