package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics records request count, latency and in-flight requests on meter.
// Routes are recorded by pattern; unmatched paths share one label.
func HTTPMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	in := telemetry.NewInstruments(meter)
	requests := in.Counter("http_server_request_total", "Total number of HTTP requests", "{request}")
	latency := in.Seconds("http_server_request_duration_seconds", "HTTP request latency distribution in seconds", telemetry.HTTPDurationBuckets)
	inFlight := in.UpDown("http_server_active_requests", "Number of requests being served", "{request}")
	if err := in.Err(); err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		inFlight.Add(ctx, 1)
		defer inFlight.Add(ctx, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := attribute.String("http.method", c.Request.Method)
		path := attribute.String("http.route", route)
		latency.Record(ctx, time.Since(start).Seconds(), telemetry.Attrs(method, path))
		requests.Add(ctx, 1, telemetry.Attrs(method, path, attribute.Int("http.status_code", c.Writer.Status())))
	}, nil
}
