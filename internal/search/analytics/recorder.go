// Package analytics is a best-effort side channel for search usage events.
// Records are queued on a buffered channel and drained by a background
// worker; the primary search path never waits on analytics and a failure
// never surfaces past a debug log. When the queue is full the record is
// dropped.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"searchdeck/internal/domain"
)

// sendTimeout bounds one delivery attempt
const sendTimeout = 5 * time.Second

// Sender delivers one analytics record; the gateway client implements it
type Sender interface {
	RecordSearchAnalytics(ctx context.Context, rec domain.AnalyticsRecord) error
}

// Recorder queues records and drains them in the background
type Recorder struct {
	sender Sender
	ch     chan domain.AnalyticsRecord
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// New creates a recorder and starts its drain worker
func New(sender Sender, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 64
	}
	r := &Recorder{
		sender: sender,
		ch:     make(chan domain.AnalyticsRecord, buffer),
	}
	r.wg.Add(1)
	go r.drain()
	return r
}

// Record enqueues a usage event. Never blocks; drops when the queue is full.
func (r *Recorder) Record(rec domain.AnalyticsRecord) {
	select {
	case r.ch <- rec:
	default:
		log.Debug().Str("query", rec.Query).Msg("analytics queue full, dropping record")
	}
}

// Close stops accepting records and waits for queued ones to be sent
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.ch)
		r.wg.Wait()
	})
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for rec := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := r.sender.RecordSearchAnalytics(ctx, rec); err != nil {
			log.Debug().Err(err).Str("query", rec.Query).Msg("analytics record failed")
		}
		cancel()
	}
}
