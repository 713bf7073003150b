package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans overdue notices out to a fixed set of workers using
// consistent hashing on the recipient address, so all notices for one
// borrower are delivered in order by the same worker.
type Dispatcher struct {
	workers []chan ports.OverdueNotice
	service ports.NoticeService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NoticeService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OverdueNotice, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OverdueNotice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or their channel is closed.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notice to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(notice ports.OverdueNotice) {
	i := d.shardIndex(notice.Recipient)
	d.workers[i] <- notice
	metrics.NoticeQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple notices preserving per-recipient ordering.
func (d *Dispatcher) EnqueueBatch(notices []ports.OverdueNotice) {
	for _, n := range notices {
		d.Enqueue(n)
	}
}

// Close stops accepting notices and blocks until every worker has drained
// its channel. Intended for batch runs that enqueue once and exit.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OverdueNotice) {
	defer d.wg.Done()
	gauge := metrics.NoticeQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case notice, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, notice); err != nil {
				d.log.Error().Err(err).
					Str("loan_id", notice.LoanID).
					Int("worker_id", id).
					Msg("overdue notice processing failed")
			}
			gauge.Set(float64(len(ch)))
		}
	}
}
