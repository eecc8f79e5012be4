package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wellnest/wellness-api/internal/api/metrics"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes metric entries to a fixed set of workers using consistent
// hashing on the user ID, guaranteeing per-user recording order.
type Dispatcher struct {
	workers []chan ports.RecordMetricInput
	service ports.MetricService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.MetricService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RecordMetricInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RecordMetricInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends an entry to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.RecordMetricInput) {
	idx := d.shardIndex(in.UserID)
	d.workers[idx] <- in
	metrics.IngestQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple entries preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(entries []ports.RecordMetricInput) {
	for _, e := range entries {
		d.Enqueue(e)
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RecordMetricInput) {
	defer d.wg.Done()
	depth := metrics.IngestQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if _, err := d.service.Record(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("user_id", in.UserID).
					Str("kind", in.Kind).
					Int("worker_id", id).
					Msg("metric recording failed")
			}
		}
	}
}
