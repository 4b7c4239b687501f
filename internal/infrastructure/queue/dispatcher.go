package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/api/metrics"
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher fans audit records out to a fixed set of workers using
// consistent hashing on the actor, so one actor's records are written in
// the order they happened. Record never blocks the request path beyond
// channel capacity.
type AuditDispatcher struct {
	workers []chan domain.AuditRecord
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record assigns the record an id and hands it to the worker responsible
// for its actor. A full worker channel drops the record with a warning
// rather than stalling a request.
func (d *AuditDispatcher) Record(rec domain.AuditRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	idx := d.shardIndex(rec.Actor)
	select {
	case d.workers[idx] <- rec:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("actor", rec.Actor).Str("action", rec.Action).Msg("audit queue full, record dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, &rec); err != nil {
				d.log.Error().Err(err).
					Str("actor", rec.Actor).
					Str("action", rec.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
