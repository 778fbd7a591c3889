// Package telemetry wires OpenTelemetry tracing, metrics and log export
// plus Pyroscope profiling for the server and worker binaries.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/orgdesk/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported on every exported signal
const ServiceVersion = "1.0.0"

// flushTimeout bounds how long a provider may spend draining on shutdown
const flushTimeout = 10 * time.Second

// Providers holds every telemetry component started for a process
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts the providers enabled by cfg. With telemetry disabled every
// provider is a no-op and the global otel providers are left untouched.
// A failure part way stops whatever was already started.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}
	fail := func(err error) (*Providers, error) {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	var err error
	if p.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		return fail(err)
	}
	if p.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		return fail(err)
	}
	if p.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		return fail(err)
	}
	if p.Profiler, err = NewProfiler(cfg, logger); err != nil {
		return fail(err)
	}
	if p.Profiler.IsEnabled() {
		p.Tracer.EnableSpanProfiles()
	}
	return p, nil
}

// Shutdown stops the profiler then flushes logs, metrics and traces.
// Every provider is attempted; the errors are joined.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func newResource(serviceName string) (*resource.Resource, error) {
	attrs := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(ServiceVersion),
	)
	if host, err := os.Hostname(); err == nil {
		attrs, _ = resource.Merge(attrs, resource.NewSchemaless(semconv.HostName(host)))
	}
	res, err := resource.Merge(resource.Default(), attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// flush runs shutdown with the flush timeout and logs a failure under signal
func flush(ctx context.Context, logger *zap.Logger, signal string, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("Telemetry flush failed", zap.String("signal", signal), zap.Error(err))
		return fmt.Errorf("shutdown %s provider: %w", signal, err)
	}
	return nil
}
