package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracing_EnrichesSpan(t *testing.T) {
	sr := setupTestTracer(t)
	user := newUser(t, identity.RoleAdmin)
	a := &stubAuthenticator{token: "good", user: user}

	router := gin.New()
	router.Use(RequestID(), Tracing("orgdesk-test"), SpanEnricher())
	router.GET("/api/v1/users", Session(a), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(router, http.MethodGet, "/api/v1/users", withSession("good"), withHeader(RequestIDHeader, "req-7"))
	perform(router, http.MethodGet, "/boom")
	perform(router, http.MethodGet, "/health")

	spans := sr.Ended()
	require.Len(t, spans, 2)

	attrs := spanAttrs(spans[0])
	assert.Equal(t, "req-7", attrs["request_id"].AsString())
	assert.Equal(t, user.CompanyID.String(), attrs["company_id"].AsString())
	assert.Equal(t, user.ID.String(), attrs["user_id"].AsString())

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	mw, err := HTTPMetrics(mp.Meter("http.server"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/users/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(router, http.MethodGet, "/api/v1/users/1")
	perform(router, http.MethodGet, "/api/v1/users/2")
	perform(router, http.MethodGet, "/nowhere")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total *metricdata.Metrics
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == "http_server_request_total" {
				total = &sm.Metrics[i]
			}
		}
	}
	require.NotNil(t, total)

	counts := map[string]int64{}
	for _, dp := range total.Data.(metricdata.Sum[int64]).DataPoints {
		route, _ := dp.Attributes.Value("http.route")
		counts[route.AsString()] += dp.Value
	}
	assert.Equal(t, int64(2), counts["/api/v1/users/:id"])
	assert.Equal(t, int64(1), counts["unmatched"])
}

func TestProfiling_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(false))
	router.GET("/api/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/v1/ping").Code)
}

func TestProfiling_LabelsAPIRequests(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(true))
	var hasCtx bool
	router.GET("/api/v1/ping", func(c *gin.Context) {
		hasCtx = c.Request.Context() != nil
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/v1/ping").Code)
	assert.True(t, hasCtx)
}
