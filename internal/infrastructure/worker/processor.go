// Package worker runs queued jobs on cron schedules.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InvalidPayloadMessage is stored on jobs rejected by the payload check
const InvalidPayloadMessage = "Invalid payload"

// Executor runs one kind of job
type Executor interface {
	// Validate checks the payload shape before the job is claimed
	Validate(payload json.RawMessage) error
	Execute(ctx context.Context, j *job.Job) error
}

// LogWriter persists failures for the admin log view
type LogWriter interface {
	SaveLog(ctx context.Context, entry *audit.Log) error
}

// Processor loads jobs by status and runs them through their executor
type Processor struct {
	repo      job.Repository
	executors map[job.Type]Executor
	cfg       config.WorkerConfig
	logger    *zap.Logger
	metrics   *telemetry.JobMetrics
	logs      LogWriter
	now       func() time.Time

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// Option configures a Processor
type Option func(*Processor)

// WithExecutor registers the executor for a job type
func WithExecutor(jobType job.Type, executor Executor) Option {
	return func(p *Processor) {
		p.executors[jobType] = executor
	}
}

// WithMetrics records job outcomes on m
func WithMetrics(m *telemetry.JobMetrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithLogWriter persists failed jobs as ERROR log rows
func WithLogWriter(w LogWriter) Option {
	return func(p *Processor) {
		p.logs = w
	}
}

// NewProcessor creates a Processor
func NewProcessor(repo job.Repository, cfg config.WorkerConfig, log *zap.Logger, opts ...Option) *Processor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = job.DefaultMaxFailures
	}
	p := &Processor{
		repo:      repo,
		executors: make(map[job.Type]Executor),
		cfg:       cfg,
		logger:    log.Named("worker"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start registers the pending, retry and cleanup schedules and starts them.
// A schedule never overlaps with a still-running run of itself.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	cronLogger := logger.NewCronLogger(p.logger)
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	schedules := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"pending", p.cfg.PendingSchedule, p.RunPending},
		{"retry", p.cfg.RetrySchedule, p.RunRetry},
		{"cleanup", p.cfg.CleanupSchedule, func(ctx context.Context) error {
			_, err := p.Cleanup(ctx)
			return err
		}},
	}
	for _, s := range schedules {
		if s.spec == "" {
			continue
		}
		if _, err := c.AddFunc(s.spec, func() {
			if err := s.run(runCtx); err != nil {
				p.logger.Error("Schedule run failed", zap.String("schedule", s.name), zap.Error(err))
			}
		}); err != nil {
			cancel()
			return fmt.Errorf("invalid %s schedule %q: %w", s.name, s.spec, err)
		}
	}

	c.Start()
	p.cron = c
	p.cancel = cancel

	p.logger.Info("Job worker started",
		zap.String("pending_schedule", p.cfg.PendingSchedule),
		zap.String("retry_schedule", p.cfg.RetrySchedule),
		zap.Int("batch_size", p.cfg.BatchSize),
		zap.Int("concurrency", p.cfg.Concurrency),
	)
	return nil
}

// Stop stops the schedules and waits for running batches until ctx expires.
// Jobs still running at that point see their context cancelled.
func (p *Processor) Stop(ctx context.Context) error {
	p.mu.Lock()
	c, cancel := p.cron, p.cancel
	p.cron, p.cancel = nil, nil
	p.mu.Unlock()

	if c == nil {
		return nil
	}
	defer cancel()

	select {
	case <-c.Stop().Done():
		p.logger.Info("Job worker stopped gracefully")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Job worker stop timed out")
		return ctx.Err()
	}
}

// RunPending processes one batch of PENDING jobs
func (p *Processor) RunPending(ctx context.Context) error {
	return p.runBatch(ctx, "pending", job.StatusPending)
}

// RunRetry processes one batch of RETRY jobs
func (p *Processor) RunRetry(ctx context.Context) error {
	return p.runBatch(ctx, "retry", job.StatusRetry)
}

// Cleanup deletes COMPLETED jobs older than the retention window
func (p *Processor) Cleanup(ctx context.Context) (int64, error) {
	before := p.now().Add(-p.cfg.CleanupRetention)
	deleted, err := p.repo.DeleteCompletedBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("delete completed jobs: %w", err)
	}
	if deleted > 0 {
		p.logger.Info("Deleted completed jobs", zap.Int64("count", deleted), zap.Time("before", before))
	}
	return deleted, nil
}

func (p *Processor) runBatch(ctx context.Context, schedule string, status job.Status) error {
	jobs, err := p.repo.FindByStatus(ctx, status, p.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("load %s jobs: %w", status, err)
	}
	p.metrics.RecordBatch(ctx, schedule, len(jobs))
	if len(jobs) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)
	for _, j := range jobs {
		g.Go(func() error {
			p.Process(ctx, j)
			return nil
		})
	}
	return g.Wait()
}

// Process runs a single job. Errors never escape: they are recorded on the job.
func (p *Processor) Process(ctx context.Context, j *job.Job) {
	log := p.logger.With(
		zap.String("job_id", j.ID.String()),
		zap.String("job_type", string(j.Type)),
		zap.String("job_status", string(j.Status)),
	)
	from := j.Status

	executor, ok := p.executors[j.Type]
	if !ok {
		j.Fail(fmt.Sprintf("%s: %s", job.ErrUnknownJobType, j.Type))
		p.settle(ctx, log, j, from, 0)
		return
	}
	if err := executor.Validate(j.Payload); err != nil {
		j.Fail(InvalidPayloadMessage)
		p.settle(ctx, log, j, from, 0)
		return
	}

	if err := j.MarkRunning(p.now()); err != nil {
		log.Warn("Job is not runnable", zap.Error(err))
		return
	}
	claimed, err := p.repo.Transition(ctx, j, from)
	if err != nil {
		log.Error("Failed to claim job", zap.Error(err))
		return
	}
	if !claimed {
		p.metrics.RecordClaimLost(ctx, string(j.Type))
		log.Debug("Job claimed by another worker")
		return
	}

	start := p.now()
	if err := p.execute(ctx, executor, j); err != nil {
		j.RecordFailure(err.Error(), p.cfg.MaxFailures)
	} else {
		_ = j.MarkCompleted(p.now())
	}
	p.settle(ctx, log, j, job.StatusRunning, p.now().Sub(start))
}

func (p *Processor) execute(ctx context.Context, executor Executor, j *job.Job) (err error) {
	jobCtx := ctx
	if p.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, p.cfg.JobTimeout)
		defer cancel()
	}
	jobCtx, span := telemetry.StartSpan(jobCtx, "job.execute",
		telemetry.AttrJobType.String(string(j.Type)),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
		telemetry.RecordError(span, err)
	}()
	return executor.Execute(jobCtx, j)
}

// settle writes the job's new state, conditional on it still being in from
func (p *Processor) settle(ctx context.Context, log *zap.Logger, j *job.Job, from job.Status, elapsed time.Duration) {
	// The result must be stored even when the batch context was cancelled mid-run.
	writeCtx := context.WithoutCancel(ctx)
	ok, err := p.repo.Transition(writeCtx, j, from)
	if err != nil {
		log.Error("Failed to store job result", zap.String("result", string(j.Status)), zap.Error(err))
		return
	}
	if !ok {
		log.Warn("Job changed while running, result dropped", zap.String("result", string(j.Status)))
		return
	}
	p.metrics.RecordResult(ctx, string(j.Type), string(j.Status), elapsed)

	switch j.Status {
	case job.StatusCompleted:
		log.Info("Job completed", zap.Duration("elapsed", elapsed))
	case job.StatusRetry:
		log.Warn("Job failed, will retry", zap.Int("failure_count", j.FailureCount), zap.String("error", j.ErrorMessage))
	case job.StatusFailed:
		log.Error("Job failed permanently", zap.Int("failure_count", j.FailureCount), zap.String("error", j.ErrorMessage))
		p.persistFailure(writeCtx, log, j)
	}
}

func (p *Processor) persistFailure(ctx context.Context, log *zap.Logger, j *job.Job) {
	if p.logs == nil {
		return
	}
	entry := audit.NewLog(audit.LevelError, "worker", "Job failed: "+j.ErrorMessage, map[string]any{
		"jobId":        j.ID.String(),
		"type":         string(j.Type),
		"failureCount": j.FailureCount,
	})
	if err := p.logs.SaveLog(ctx, entry); err != nil {
		log.Warn("Failed to persist job failure log", zap.Error(err))
	}
}
