package store

import (
	"context"
	"reflect"
	"sync"
)

// Collection identifies one of the three record collections for the
// purpose of live-query dependency tracking.
type Collection string

const (
	CollectionTasks     Collection = "tasks"
	CollectionTemplates Collection = "templates"
	CollectionSettings  Collection = "settings"
)

// Hub is the subscription registry behind live queries. Each live query
// registers the collections its computation reads; every committed
// mutation announces the collections it touched, and the hub re-runs
// exactly the subscriptions whose read-set intersects the touched-set.
// A recomputed result is delivered only when it differs by deep value
// equality from the last delivered result.
//
// Delivery runs synchronously on the mutating goroutine, after commit.
// Callbacks must therefore not issue further mutations.
type Hub struct {
	mu      sync.Mutex
	subs    map[int]*Subscription
	nextID  int
	onError func(name string, err error)
}

// NewHub creates an empty subscription registry.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*Subscription)}
}

// OnError installs a hook for query failures during re-delivery. Without
// a hook such failures keep the previous value and are dropped, matching
// the contract that a failed computation produces no delivery.
func (h *Hub) OnError(fn func(name string, err error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onError = fn
}

// Subscription is a handle on one live query.
type Subscription struct {
	id    int
	name  string
	hub   *Hub
	reads map[Collection]bool

	mu       sync.Mutex
	canceled bool
	rerun    func(ctx context.Context)
}

// Name returns the label the subscription registered under.
func (s *Subscription) Name() string { return s.name }

// Cancel deregisters the subscription. It is synchronous: once Cancel
// returns, the deliver callback will never be invoked again. Cancel is
// safe to call more than once.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	s.canceled = true
	s.mu.Unlock()

	s.hub.mu.Lock()
	delete(s.hub.subs, s.id)
	s.hub.mu.Unlock()
}

// Subscribe registers a live query. The query runs once immediately and
// its result is delivered before Subscribe returns; an error from that
// initial run fails the subscription. Afterwards the query re-runs on
// every announcement whose touched collections intersect reads.
func Subscribe[T any](h *Hub, name string, reads []Collection, query func(ctx context.Context) (T, error), deliver func(T)) (*Subscription, error) {
	readSet := make(map[Collection]bool, len(reads))
	for _, c := range reads {
		readSet[c] = true
	}

	sub := &Subscription{name: name, hub: h, reads: readSet}

	initial, err := query(context.Background())
	if err != nil {
		return nil, err
	}
	last := initial
	deliver(initial)

	sub.rerun = func(ctx context.Context) {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		if sub.canceled {
			return
		}
		next, err := query(ctx)
		if err != nil {
			if h.onError != nil {
				h.onError(name, err)
			}
			return
		}
		if reflect.DeepEqual(next, last) {
			return
		}
		last = next
		deliver(next)
	}

	h.mu.Lock()
	h.nextID++
	sub.id = h.nextID
	h.subs[sub.id] = sub
	h.mu.Unlock()

	return sub, nil
}

// Notify announces that a committed mutation touched the given
// collections. The store calls this after every successful write; a
// failed write announces nothing, so subscribers simply see no change.
func (h *Hub) Notify(ctx context.Context, touched ...Collection) {
	h.mu.Lock()
	matched := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		for _, c := range touched {
			if sub.reads[c] {
				matched = append(matched, sub)
				break
			}
		}
	}
	h.mu.Unlock()

	// Re-run outside the registry lock so callbacks can cancel or add
	// subscriptions. Each subscription's own lock keeps Cancel exact.
	for _, sub := range matched {
		sub.rerun(ctx)
	}
}
