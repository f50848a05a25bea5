package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chartentity "stocksync/internal/feature/chart/domain/entity"
	chartusecase "stocksync/internal/feature/chart/usecase"
	quoteentity "stocksync/internal/feature/quotes/domain/entity"
	"stocksync/internal/shared/notify"
)

type mockTracked struct {
	trackedFn func(ctx context.Context) ([]string, error)
}

func (m *mockTracked) TrackedSymbols(ctx context.Context) ([]string, error) {
	return m.trackedFn(ctx)
}

type mockQuotes struct {
	getQuotesFn func(ctx context.Context, symbols []string) ([]quoteentity.Quote, error)
	calls       int
}

func (m *mockQuotes) GetQuotes(ctx context.Context, symbols []string) ([]quoteentity.Quote, error) {
	m.calls++
	return m.getQuotesFn(ctx, symbols)
}

type mockCharts struct {
	getChartFn func(ctx context.Context, symbol string, r chartusecase.Range) ([]chartentity.Price, error)
	calls      int
}

func (m *mockCharts) GetChart(ctx context.Context, symbol string, r chartusecase.Range) ([]chartentity.Price, error) {
	m.calls++
	return m.getChartFn(ctx, symbol, r)
}

func TestWatchlistUsecase_EmptyWatchlist(t *testing.T) {
	t.Parallel()

	tracked := &mockTracked{
		trackedFn: func(context.Context) ([]string, error) { return nil, nil },
	}
	quotes := &mockQuotes{}
	charts := &mockCharts{}

	u := NewWatchlistUsecase(tracked, quotes, charts, notify.NewNotifier())

	got, err := u.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, quotes.calls, "empty watchlist must not hit the quote layer")
	assert.Zero(t, charts.calls, "empty watchlist must not hit the chart layer")
}

func TestWatchlistUsecase_JoinsQuotesAndWeeklyCharts(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	tracked := &mockTracked{
		trackedFn: func(context.Context) ([]string, error) { return []string{"AAPL", "TSLA"}, nil },
	}
	quotes := &mockQuotes{
		getQuotesFn: func(_ context.Context, symbols []string) ([]quoteentity.Quote, error) {
			assert.Equal(t, []string{"AAPL", "TSLA"}, symbols)
			return []quoteentity.Quote{{Symbol: "AAPL"}, {Symbol: "TSLA"}}, nil
		},
	}
	charts := &mockCharts{
		getChartFn: func(_ context.Context, symbol string, r chartusecase.Range) ([]chartentity.Price, error) {
			assert.Equal(t, chartusecase.RangeWeek, r, "watchlist sparklines use the weekly window")
			return []chartentity.Price{{Symbol: symbol, Date: day, Close: 100}}, nil
		},
	}

	u := NewWatchlistUsecase(tracked, quotes, charts, notify.NewNotifier())

	got, err := u.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Quote.Symbol)
	require.Len(t, got[0].Prices, 1)
	assert.Equal(t, "AAPL", got[0].Prices[0].Symbol)
	assert.Equal(t, "TSLA", got[1].Quote.Symbol)
}

func TestWatchlistUsecase_ChartFailureDegradesEntry(t *testing.T) {
	t.Parallel()

	tracked := &mockTracked{
		trackedFn: func(context.Context) ([]string, error) { return []string{"AAPL", "TSLA"}, nil },
	}
	quotes := &mockQuotes{
		getQuotesFn: func(context.Context, []string) ([]quoteentity.Quote, error) {
			return []quoteentity.Quote{{Symbol: "AAPL"}, {Symbol: "TSLA"}}, nil
		},
	}
	charts := &mockCharts{
		getChartFn: func(_ context.Context, symbol string, _ chartusecase.Range) ([]chartentity.Price, error) {
			if symbol == "AAPL" {
				return nil, errors.New("upstream down")
			}
			return []chartentity.Price{{Symbol: symbol}}, nil
		},
	}

	u := NewWatchlistUsecase(tracked, quotes, charts, notify.NewNotifier())

	got, err := u.Snapshot(context.Background())
	require.NoError(t, err, "one failed chart must not fail the view")
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Prices, "failed chart degrades to quote-only")
	assert.NotEmpty(t, got[1].Prices)
}

func TestWatchlistUsecase_PartialQuoteBatchStillServed(t *testing.T) {
	t.Parallel()

	tracked := &mockTracked{
		trackedFn: func(context.Context) ([]string, error) { return []string{"AAPL", "TSLA"}, nil },
	}
	quotes := &mockQuotes{
		getQuotesFn: func(context.Context, []string) ([]quoteentity.Quote, error) {
			return []quoteentity.Quote{{Symbol: "AAPL"}}, errors.New("upstream down")
		},
	}
	charts := &mockCharts{
		getChartFn: func(_ context.Context, symbol string, _ chartusecase.Range) ([]chartentity.Price, error) {
			return []chartentity.Price{{Symbol: symbol}}, nil
		},
	}

	u := NewWatchlistUsecase(tracked, quotes, charts, notify.NewNotifier())

	got, err := u.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1, "cached subset survives a failed batch")
	assert.Equal(t, "AAPL", got[0].Quote.Symbol)
}

func TestWatchlistUsecase_Stream(t *testing.T) {
	t.Parallel()

	sets := [][]string{{"AAPL"}, {"AAPL", "TSLA"}}
	reads := 0
	tracked := &mockTracked{
		trackedFn: func(context.Context) ([]string, error) {
			set := sets[min(reads, len(sets)-1)]
			reads++
			return set, nil
		},
	}
	quotes := &mockQuotes{
		getQuotesFn: func(_ context.Context, symbols []string) ([]quoteentity.Quote, error) {
			out := make([]quoteentity.Quote, len(symbols))
			for i, s := range symbols {
				out[i] = quoteentity.Quote{Symbol: s}
			}
			return out, nil
		},
	}
	charts := &mockCharts{
		getChartFn: func(context.Context, string, chartusecase.Range) ([]chartentity.Price, error) {
			return nil, nil
		},
	}
	notifier := notify.NewNotifier()

	u := NewWatchlistUsecase(tracked, quotes, charts, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := u.Stream(ctx)

	got := <-out
	require.Len(t, got, 1)

	notifier.Notify(notify.TableTrackedSymbols)
	got = <-out
	require.Len(t, got, 2)

	cancel()
	for range out {
	}
}
