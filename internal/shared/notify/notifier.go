// Package notify provides an in-process table-change notifier.
// Repositories signal a table name after every successful write, and
// streaming readers re-run their query when any of their tables change.
package notify

import (
	"context"
	"sync"
)

// Table names used across the store adapters.
const (
	TableQuotes         = "quotes"
	TablePrices         = "prices"
	TableNews           = "news"
	TableCompanyInfos   = "company_infos"
	TableSymbols        = "symbols"
	TableTrackedSymbols = "tracked_symbols"
	TableMostActive     = "most_active_ranking"
)

type subscriber struct {
	tables map[string]struct{}
	ch     chan struct{}
}

// Notifier fans out table-change signals to subscribers.
// Signals are coalesced: a subscriber that has not drained its channel
// yet will see at most one pending signal.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscriber
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]*subscriber)}
}

// Notify signals every subscriber watching any of the given tables.
func (n *Notifier) Notify(tables ...string) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.subs {
		for _, t := range tables {
			if _, ok := s.tables[t]; ok {
				select {
				case s.ch <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

// Subscribe returns a channel that receives a signal whenever one of the
// given tables changes. The subscription is removed and the channel
// closed when ctx is cancelled.
func (n *Notifier) Subscribe(ctx context.Context, tables ...string) <-chan struct{} {
	set := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		set[t] = struct{}{}
	}
	s := &subscriber{tables: set, ch: make(chan struct{}, 1)}

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = s
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
		close(s.ch)
	}()

	return s.ch
}
