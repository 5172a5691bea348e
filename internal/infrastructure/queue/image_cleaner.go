package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/ports"
	"github.com/menuglobal/menu-admin/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deleteTimeout  = 15 * time.Second
)

// ImageCleaner deletes hosted images in the background so request handlers
// never wait on the remote host. Deletions are best effort: when the queue is
// full the request is dropped and counted.
type ImageCleaner struct {
	host    ports.ImageHost
	jobs    chan string
	workers int
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewImageCleaner creates an ImageCleaner with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewImageCleaner(numWorkers int, host ports.ImageHost, log zerolog.Logger) *ImageCleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &ImageCleaner{
		host:    host,
		jobs:    make(chan string, channelBuffer),
		workers: numWorkers,
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close once the queue is drained.
func (q *ImageCleaner) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.runWorker(ctx, i)
	}
}

// Owns asks the image host whether url belongs to restaurantID.
func (q *ImageCleaner) Owns(restaurantID, url string) bool {
	return q.host.Owns(restaurantID, url)
}

// Schedule queues url for deletion without blocking.
func (q *ImageCleaner) Schedule(url string) {
	if url == "" {
		return
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.ImageDeletionsTotal.WithLabelValues("dropped").Inc()
		return
	}

	select {
	case q.jobs <- url:
		metrics.ImageCleanupQueueDepth.Inc()
	default:
		metrics.ImageDeletionsTotal.WithLabelValues("dropped").Inc()
		q.log.Warn().Str("url", url).Msg("image cleanup queue full, dropping deletion")
	}
}

// Close stops accepting work and waits for queued deletions to finish.
func (q *ImageCleaner) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *ImageCleaner) runWorker(ctx context.Context, id int) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-q.jobs:
			if !ok {
				return
			}
			metrics.ImageCleanupQueueDepth.Dec()
			q.delete(ctx, id, url)
		}
	}
}

func (q *ImageCleaner) delete(ctx context.Context, id int, url string) {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if !q.host.Delete(ctx, url) {
		metrics.ImageDeletionsTotal.WithLabelValues("failed").Inc()
		q.log.Warn().Str("url", url).Int("worker_id", id).Msg("image cleanup failed")
		return
	}
	metrics.ImageDeletionsTotal.WithLabelValues("success").Inc()
	q.log.Debug().Str("url", url).Int("worker_id", id).Msg("image deleted")
}
