// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login and registration results.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	articlesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_articles_created_total",
			Help: "Total number of articles published",
		},
	)

	commentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_comments_created_total",
			Help: "Total number of comments posted",
		},
	)

	logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success | failure | error
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_registrations_total",
			Help: "Registration attempts by result",
		},
		[]string{"result"}, // success | duplicate | error
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one finished HTTP request. route is the mux path
// template, never the raw path.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ArticleCreated() { articlesCreated.Inc() }

func CommentCreated() { commentsCreated.Inc() }

func Login(result string) { logins.WithLabelValues(result).Inc() }

func Registration(result string) { registrations.WithLabelValues(result).Inc() }
