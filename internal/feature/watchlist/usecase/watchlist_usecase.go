// Package usecase assembles the watchlist view from the tracked-symbol
// registry, quotes and weekly charts.
package usecase

import (
	"context"
	"log/slog"

	chartentity "stocksync/internal/feature/chart/domain/entity"
	chartusecase "stocksync/internal/feature/chart/usecase"
	quoteentity "stocksync/internal/feature/quotes/domain/entity"
	"stocksync/internal/shared/notify"
)

// TrackedLister exposes the watchlist membership.
type TrackedLister interface {
	TrackedSymbols(ctx context.Context) ([]string, error)
}

// QuoteBatcher reconciles a symbol set into quotes.
type QuoteBatcher interface {
	GetQuotes(ctx context.Context, symbols []string) ([]quoteentity.Quote, error)
}

// ChartGetter serves the gap-filled daily bars for one symbol.
type ChartGetter interface {
	GetChart(ctx context.Context, symbol string, r chartusecase.Range) ([]chartentity.Price, error)
}

// Entry is one watchlist row: the quote plus its one-week sparkline.
type Entry struct {
	Quote  quoteentity.Quote   `json:"quote"`
	Prices []chartentity.Price `json:"prices"`
}

// WatchlistUsecase joins tracked symbols with their quotes and weekly
// price windows.
type WatchlistUsecase struct {
	tracked  TrackedLister
	quotes   QuoteBatcher
	charts   ChartGetter
	notifier *notify.Notifier
}

// NewWatchlistUsecase creates a WatchlistUsecase.
func NewWatchlistUsecase(tracked TrackedLister, quotes QuoteBatcher, charts ChartGetter, notifier *notify.Notifier) *WatchlistUsecase {
	return &WatchlistUsecase{tracked: tracked, quotes: quotes, charts: charts, notifier: notifier}
}

// Snapshot builds the current watchlist view. An empty watchlist yields
// an empty slice without touching quotes or charts. A failed chart for
// one symbol degrades that entry to quote-only rather than failing the
// whole view; a failed quote batch still serves the cached subset.
func (u *WatchlistUsecase) Snapshot(ctx context.Context) ([]Entry, error) {
	symbols, err := u.tracked.TrackedSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []Entry{}, nil
	}

	quotes, err := u.quotes.GetQuotes(ctx, symbols)
	if err != nil {
		if len(quotes) == 0 {
			return nil, err
		}
		slog.Warn("watchlist serving partial quote set", "error", err)
	}

	entries := make([]Entry, 0, len(quotes))
	for _, q := range quotes {
		prices, err := u.charts.GetChart(ctx, q.Symbol, chartusecase.RangeWeek)
		if err != nil {
			slog.Warn("watchlist chart unavailable", "symbol", q.Symbol, "error", err)
			prices = nil
		}
		entries = append(entries, Entry{Quote: q, Prices: prices})
	}
	return entries, nil
}

// Stream emits the watchlist view, then re-emits whenever the tracked
// set, quotes or prices change, until ctx is cancelled.
func (u *WatchlistUsecase) Stream(ctx context.Context) <-chan []Entry {
	out := make(chan []Entry, 1)
	signals := u.notifier.Subscribe(ctx,
		notify.TableTrackedSymbols, notify.TableQuotes, notify.TablePrices)

	go func() {
		defer close(out)
		for {
			entries, err := u.Snapshot(ctx)
			if err != nil {
				slog.Error("watchlist stream refresh failed", "error", err)
			} else {
				select {
				case out <- entries:
				case <-ctx.Done():
					return
				}
			}
			select {
			case _, ok := <-signals:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
