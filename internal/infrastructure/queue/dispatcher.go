package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/api/metrics"
	"github.com/byteverse/platform-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes outbound deliveries to a fixed set of workers using
// consistent hashing on the recipient, guaranteeing per-recipient
// delivery ordering.
type Dispatcher struct {
	workers []chan ports.Outbound
	service ports.DeliveryService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.DeliveryService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Outbound, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Outbound, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a delivery to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(out ports.Outbound) {
	i := d.shardIndex(out.Recipient)
	d.workers[i] <- out
	metrics.DeliveryQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple deliveries preserving per-recipient ordering.
func (d *Dispatcher) EnqueueBatch(outs []ports.Outbound) {
	for _, out := range outs {
		d.Enqueue(out)
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Outbound) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case out, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, out); err != nil {
				d.log.Error().Err(err).
					Str("recipient", out.Recipient).
					Int("worker_id", id).
					Msg("delivery failed")
			}
			metrics.DeliveryQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
