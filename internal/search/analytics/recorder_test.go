package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchdeck/internal/domain"
)

type captureSender struct {
	mu      sync.Mutex
	records []domain.AnalyticsRecord
	err     error
	block   chan struct{}
}

func (c *captureSender) RecordSearchAnalytics(ctx context.Context, rec domain.AnalyticsRecord) error {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return c.err
}

func (c *captureSender) got() []domain.AnalyticsRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.AnalyticsRecord(nil), c.records...)
}

func TestRecordsDelivered(t *testing.T) {
	sender := &captureSender{}
	r := New(sender, 8)

	r.Record(domain.AnalyticsRecord{Query: "one", ResultCount: 3})
	r.Record(domain.AnalyticsRecord{Query: "two", ClickedResultID: "p1", ClickPosition: 1})
	r.Close()

	records := sender.got()
	require.Len(t, records, 2)
	assert.Equal(t, "one", records[0].Query)
	assert.Equal(t, "p1", records[1].ClickedResultID)
}

func TestSenderErrorSwallowed(t *testing.T) {
	sender := &captureSender{err: errors.New("backend down")}
	r := New(sender, 8)

	r.Record(domain.AnalyticsRecord{Query: "fails quietly"})
	r.Close()

	assert.Len(t, sender.got(), 1, "delivery attempted, error not propagated")
}

func TestRecordNeverBlocksWhenFull(t *testing.T) {
	sender := &captureSender{block: make(chan struct{})}
	r := New(sender, 1)

	// one record in the worker, one in the buffer, the rest must be dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			r.Record(domain.AnalyticsRecord{Query: "flood"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(sender.block)
	r.Close()
	assert.LessOrEqual(t, len(sender.got()), 3)
}

func TestCloseIdempotent(t *testing.T) {
	r := New(&captureSender{}, 4)
	r.Close()
	r.Close()
}
