package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var got []SearchStartedEvent
	b.Subscribe(EventSearchStarted, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(SearchStartedEvent))
	})

	b.Publish(SearchStartedEvent{Query: "golang", Page: 1})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "golang", got[0].Query)
}

func TestSubscriberFiltersByType(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	count := 0
	b.Subscribe(EventSearchCompleted, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	b.Publish(SearchStartedEvent{Query: "x", Page: 1})
	b.Publish(SearchCompletedEvent{Query: "x", Page: 1, ResultCount: 3})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	count := 0
	unsubscribe := b.Subscribe(EventHistoryChanged, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	b.Publish(HistoryChangedEvent{})
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})

	unsubscribe()
	b.Publish(HistoryChangedEvent{})
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestPanickingHandlerDoesNotKillBus(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	delivered := false
	b.Subscribe(EventSearchFailed, func(e DomainEvent) {
		panic("handler bug")
	})
	b.Subscribe(EventSearchFailed, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		delivered = true
	})

	require.NotPanics(t, func() {
		b.Publish(SearchFailedEvent{Query: "x", Page: 1, Message: "boom"})
	})
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return delivered
	})
}

func TestPublishAfterCloseIsSafe(t *testing.T) {
	b := New()
	b.Close()
	assert.NotPanics(t, func() {
		b.Publish(SearchStartedEvent{Query: "late", Page: 1})
	})
}
