package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// JobMetrics instruments the background job worker. A nil *JobMetrics records nothing.
type JobMetrics struct {
	processed metric.Int64Counter
	claimLost metric.Int64Counter
	duration  metric.Float64Histogram
	batchSize metric.Int64Gauge
}

// NewJobMetrics registers the worker instruments on meter
func NewJobMetrics(meter metric.Meter) (*JobMetrics, error) {
	in := NewInstruments(meter)
	m := &JobMetrics{
		processed: in.Counter("jobs_processed_total", "Jobs finished, by type and resulting status", "{job}"),
		claimLost: in.Counter("jobs_claim_lost_total", "Jobs skipped because another worker claimed them first", "{job}"),
		duration:  in.Seconds("job_duration_seconds", "Job execution time", JobDurationBuckets),
		batchSize: in.Gauge("job_batch_size", "Jobs loaded by the last run of a schedule", "{job}"),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordResult counts a finished job and its execution time
func (m *JobMetrics) RecordResult(ctx context.Context, jobType, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.processed.Add(ctx, 1, Attrs(AttrJobType.String(jobType), AttrJobStatus.String(status)))
	m.duration.Record(ctx, elapsed.Seconds(), Attrs(AttrJobType.String(jobType)))
}

// RecordClaimLost counts a job another worker took first
func (m *JobMetrics) RecordClaimLost(ctx context.Context, jobType string) {
	if m == nil {
		return
	}
	m.claimLost.Add(ctx, 1, Attrs(AttrJobType.String(jobType)))
}

// RecordBatch records how many jobs a schedule loaded
func (m *JobMetrics) RecordBatch(ctx context.Context, schedule string, size int) {
	if m == nil {
		return
	}
	m.batchSize.Record(ctx, int64(size), Attrs(AttrSchedule.String(schedule)))
}
