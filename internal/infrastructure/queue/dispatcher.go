package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/consumershield/claims-core/internal/api/metrics"
	"github.com/consumershield/claims-core/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher processes post-commit side-effect jobs (audit insert,
// claimant notification, cache invalidation) on a fixed set of workers,
// sharded by claim id so effects for one claim apply in order. Jobs are
// enqueued only after the primary write committed; every failure here
// is logged and counted, never surfaced to the request that produced
// the job.
type Dispatcher struct {
	workers  []chan ports.SideEffectJob
	audit    ports.AuditRepository
	notifier ports.Notifier
	cache    ports.ViewCache
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditRepository, notifier ports.Notifier, cache ports.ViewCache, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.SideEffectJob, numWorkers),
		audit:    audit,
		notifier: notifier,
		cache:    cache,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SideEffectJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its claim. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.SideEffectJob) {
	idx := d.shardIndex(job.ClaimID)
	d.workers[idx] <- job
	metrics.SideEffectQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a claim id deterministically to a worker index.
func (d *Dispatcher) shardIndex(claimID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(claimID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SideEffectJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, job)
			metrics.SideEffectQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

// process applies each part of the job independently: a failed audit
// insert does not stop the notification, and vice versa.
func (d *Dispatcher) process(ctx context.Context, job ports.SideEffectJob) {
	if job.Audit != nil {
		if err := d.audit.Insert(ctx, job.Audit); err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("audit").Inc()
			d.log.Warn().Err(err).
				Str("claim_id", job.ClaimID).
				Str("action", job.Audit.Action).
				Msg("failed to insert audit entry")
		}
	}

	if job.Notify != nil {
		if err := d.notifier.StatusChanged(ctx, job.Notify.ClaimID, job.Notify.NewStatus, job.Notify.RecipientUserID); err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("notify").Inc()
			d.log.Warn().Err(err).
				Str("claim_id", job.ClaimID).
				Msg("failed to dispatch notification")
		}
	}

	if len(job.InvalidateScopes) > 0 {
		if err := d.cache.Invalidate(ctx, job.InvalidateScopes...); err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("cache").Inc()
			d.log.Warn().Err(err).
				Str("claim_id", job.ClaimID).
				Msg("failed to invalidate cached views")
		}
	}
}
