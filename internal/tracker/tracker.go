// Package tracker maintains the user-visible submission history: one bulk
// fetch creates the records, and push-channel events mutate them in place by
// judge ID. Events never create, delete or reorder records. Updates that
// arrive while the initial fetch is still outstanding are buffered and
// replayed once the list exists, so a fast judge cannot race the slow fetch.
package tracker

import (
	"context"
	"log"
	"sync"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/wss"
)

// HistoryFetcher is the one backend call the tracker makes; *api.Client
// satisfies it.
type HistoryFetcher interface {
	History(ctx context.Context) ([]model.SubmissionRecord, error)
}

// EventSource is the push channel surface the tracker attaches to.
type EventSource interface {
	Subscribe(h wss.Handler) (unsubscribe func())
}

// pendingLimit bounds the pre-load buffer. The judge would have to grade a
// lot of submissions during one history fetch to overflow it.
const pendingLimit = 256

type Tracker struct {
	client HistoryFetcher

	mu      sync.RWMutex
	records []model.SubmissionRecord
	loaded  bool
	pending []model.ResultUpdateEvent

	unsubscribe func()
}

func NewTracker(client HistoryFetcher) *Tracker {
	return &Tracker{client: client}
}

// Attach subscribes the tracker to the push channel. Call once when the
// history view mounts; Detach undoes it.
func (t *Tracker) Attach(source EventSource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unsubscribe != nil {
		return
	}
	t.unsubscribe = source.Subscribe(t.Apply)
}

// Detach unsubscribes from the push channel. The records survive; only the
// flow of live updates stops.
func (t *Tracker) Detach() {
	t.mu.Lock()
	unsub := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// LoadInitial fetches the full history once. On success any buffered events
// are replayed in arrival order. On failure the tracker stays unloaded (and
// keeps buffering) until a retry succeeds.
func (t *Tracker) LoadInitial(ctx context.Context) error {
	records, err := t.client.History(ctx)
	if err != nil {
		log.Printf("[Tracker] history fetch failed: %v", err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = records
	for _, event := range t.pending {
		t.merge(event)
	}
	if n := len(t.pending); n > 0 {
		log.Printf("[Tracker] replayed %d buffered event(s)", n)
	}
	t.pending = nil
	t.loaded = true
	return nil
}

// Loaded reports whether the initial fetch has completed.
func (t *Tracker) Loaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loaded
}

// Apply merges one result update into the list, or buffers it when the
// initial fetch has not completed yet. Safe to call concurrently with
// LoadInitial; an event lands either in the buffer or in the loaded list,
// never lost between the two.
func (t *Tracker) Apply(event model.ResultUpdateEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		if len(t.pending) >= pendingLimit {
			log.Printf("[Tracker] pre-load buffer full, dropping event for %s", event.ID)
			return
		}
		t.pending = append(t.pending, event)
		return
	}

	t.merge(event)
}

// merge replaces the result of the record whose judge ID matches the event.
// All other fields and the record's position stay untouched; an unmatched
// event is dropped. Replacement is by value, so reapplying an event is a
// no-op. Caller holds t.mu.
func (t *Tracker) merge(event model.ResultUpdateEvent) {
	for i := range t.records {
		if t.records[i].JudgeID == event.ID {
			t.records[i].Result = event.Result
			return
		}
	}
	log.Printf("[Tracker] no record for judge id %s, dropping event", event.ID)
}

// Records returns a snapshot of the current list in its original order.
func (t *Tracker) Records() []model.SubmissionRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.SubmissionRecord, len(t.records))
	copy(out, t.records)
	return out
}
