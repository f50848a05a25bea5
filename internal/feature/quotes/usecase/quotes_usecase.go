// Package usecase implements the cache-or-fetch policies for quotes.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"stocksync/internal/feature/quotes/domain/entity"
	"stocksync/internal/shared/notify"
)

const (
	// QuoteTTL is the maximum age a cached quote may have before a
	// refetch is triggered.
	QuoteTTL = time.Hour
	// MostActiveTTL bounds the age of the most-active ranking row.
	MostActiveTTL = time.Hour
	// DefaultMostActiveLimit is the number of most-active quotes
	// requested from the remote source.
	DefaultMostActiveLimit = 20
)

// QuoteRepository abstracts the local store for quotes.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type QuoteRepository interface {
	GetFresh(ctx context.Context, symbol string, cutoff time.Time) (*entity.Quote, error)
	GetFreshSet(ctx context.Context, symbols []string, cutoff time.Time) ([]entity.Quote, error)
	Upsert(ctx context.Context, quotes []entity.Quote) error
	GetRanking(ctx context.Context) (*entity.MostActiveRanking, error)
	RefreshMostActive(ctx context.Context, ranking entity.MostActiveRanking, quotes []entity.Quote) error
}

// QuoteSource abstracts the remote data provider for quotes.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (entity.Quote, error)
	BatchQuotes(ctx context.Context, symbols []string) ([]entity.Quote, error)
	MostActive(ctx context.Context, limit int) ([]entity.Quote, error)
}

// QuotesUsecase serves quotes from the local store, fetching from the
// remote source only for symbols that are absent or stale.
type QuotesUsecase struct {
	repo     QuoteRepository
	source   QuoteSource
	notifier *notify.Notifier
	group    singleflight.Group
	now      func() time.Time
}

// NewQuotesUsecase creates a QuotesUsecase.
func NewQuotesUsecase(repo QuoteRepository, source QuoteSource, notifier *notify.Notifier) *QuotesUsecase {
	return &QuotesUsecase{repo: repo, source: source, notifier: notifier, now: time.Now}
}

// GetQuote returns the quote for symbol, refetching it when the cached
// row is older than QuoteTTL. Concurrent callers for the same symbol
// share one remote call.
func (u *QuotesUsecase) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	now := u.now()
	cached, err := u.repo.GetFresh(ctx, symbol, now.Add(-QuoteTTL))
	if err != nil {
		return entity.Quote{}, err
	}
	if cached != nil {
		return *cached, nil
	}

	v, err, _ := u.group.Do("quote:"+symbol, func() (any, error) {
		quote, err := u.source.Quote(ctx, symbol)
		if err != nil {
			return entity.Quote{}, err
		}
		quote.FetchTimestamp = u.now()
		if err := u.repo.Upsert(ctx, []entity.Quote{quote}); err != nil {
			return entity.Quote{}, err
		}
		return quote, nil
	})
	if err != nil {
		return entity.Quote{}, err
	}
	return v.(entity.Quote), nil
}

// GetQuotes reconciles a symbol set against the cache: fresh rows are
// served locally and only the complement is fetched, in one batched
// call. When the remote call fails, the fresh cached subset is still
// returned together with the error so callers keep known-good data.
// Results follow the requested symbol order.
func (u *QuotesUsecase) GetQuotes(ctx context.Context, symbols []string) ([]entity.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	now := u.now()
	fresh, err := u.repo.GetFreshSet(ctx, symbols, now.Add(-QuoteTTL))
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string]entity.Quote, len(symbols))
	for _, q := range fresh {
		bySymbol[q.Symbol] = q
	}

	var missing []string
	for _, s := range symbols {
		if _, ok := bySymbol[s]; !ok {
			missing = append(missing, s)
		}
	}

	if len(missing) > 0 {
		v, err, _ := u.group.Do("quotes:"+strings.Join(missing, ","), func() (any, error) {
			fetched, err := u.source.BatchQuotes(ctx, missing)
			if err != nil {
				return nil, err
			}
			stamp := u.now()
			for i := range fetched {
				fetched[i].FetchTimestamp = stamp
			}
			if err := u.repo.Upsert(ctx, fetched); err != nil {
				return nil, err
			}
			return fetched, nil
		})
		if err != nil {
			return ordered(symbols, bySymbol), err
		}
		for _, q := range v.([]entity.Quote) {
			bySymbol[q.Symbol] = q
		}
	}

	return ordered(symbols, bySymbol), nil
}

// GetMostActive returns quotes for today's most-active instruments.
// While the ranking row is fresh, the symbols it names are reconciled
// like any other batch; once it goes stale the top-N quotes are
// refetched and the ranking is atomically replaced.
func (u *QuotesUsecase) GetMostActive(ctx context.Context) ([]entity.Quote, error) {
	now := u.now()
	ranking, err := u.repo.GetRanking(ctx)
	if err != nil {
		return nil, err
	}
	if ranking != nil && !ranking.FetchTimestamp.Before(now.Add(-MostActiveTTL)) {
		return u.GetQuotes(ctx, strings.Split(ranking.Symbols, ","))
	}

	v, err, _ := u.group.Do("mostactive", func() (any, error) {
		quotes, err := u.source.MostActive(ctx, DefaultMostActiveLimit)
		if err != nil {
			return nil, err
		}
		stamp := u.now()
		names := make([]string, 0, len(quotes))
		for i := range quotes {
			quotes[i].IsTopActive = true
			quotes[i].FetchTimestamp = stamp
			names = append(names, quotes[i].Symbol)
		}
		refreshed := entity.MostActiveRanking{
			Symbols:        strings.Join(names, ","),
			FetchTimestamp: stamp,
		}
		if err := u.repo.RefreshMostActive(ctx, refreshed, quotes); err != nil {
			return nil, err
		}
		return quotes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Quote), nil
}

// StreamQuotes emits the reconciled quote set for symbols, then
// re-emits whenever the quotes table changes, until ctx is cancelled.
// Refresh failures keep the stream alive with the last known data.
func (u *QuotesUsecase) StreamQuotes(ctx context.Context, symbols []string) <-chan []entity.Quote {
	out := make(chan []entity.Quote, 1)
	signals := u.notifier.Subscribe(ctx, notify.TableQuotes)

	go func() {
		defer close(out)
		for {
			quotes, err := u.GetQuotes(ctx, symbols)
			if err != nil {
				slog.Error("quote stream refresh failed", "symbols", symbols, "error", err)
			}
			if err == nil || len(quotes) > 0 {
				select {
				case out <- quotes:
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

// ordered arranges the reconciled quotes in requested-symbol order,
// skipping symbols the provider did not return.
func ordered(symbols []string, bySymbol map[string]entity.Quote) []entity.Quote {
	out := make([]entity.Quote, 0, len(bySymbol))
	for _, s := range symbols {
		if q, ok := bySymbol[s]; ok {
			out = append(out, q)
		}
	}
	return out
}
