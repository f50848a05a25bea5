package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksync/internal/feature/directory/domain/entity"
	"stocksync/internal/shared/notify"
)

var fixedNow = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

type mockSymbolRepo struct {
	hasFreshFn   func(ctx context.Context, cutoff time.Time) (bool, error)
	searchFn     func(ctx context.Context, query string) ([]entity.Symbol, error)
	refreshFn    func(ctx context.Context, symbols []entity.Symbol) error
	trackedFn    func(ctx context.Context) ([]string, error)
	isTrackedFn  func(ctx context.Context, symbol string) (bool, error)
	setTrackedFn func(ctx context.Context, symbol string, tracked bool) error

	refreshCalls int
}

func (m *mockSymbolRepo) HasFresh(ctx context.Context, cutoff time.Time) (bool, error) {
	return m.hasFreshFn(ctx, cutoff)
}

func (m *mockSymbolRepo) Search(ctx context.Context, query string) ([]entity.Symbol, error) {
	return m.searchFn(ctx, query)
}

func (m *mockSymbolRepo) Refresh(ctx context.Context, symbols []entity.Symbol) error {
	m.refreshCalls++
	return m.refreshFn(ctx, symbols)
}

func (m *mockSymbolRepo) TrackedSymbols(ctx context.Context) ([]string, error) {
	return m.trackedFn(ctx)
}

func (m *mockSymbolRepo) IsTracked(ctx context.Context, symbol string) (bool, error) {
	return m.isTrackedFn(ctx, symbol)
}

func (m *mockSymbolRepo) SetTracked(ctx context.Context, symbol string, tracked bool) error {
	return m.setTrackedFn(ctx, symbol, tracked)
}

type mockSymbolSource struct {
	symbolsFn func(ctx context.Context) ([]entity.Symbol, error)
	calls     int
}

func (m *mockSymbolSource) Symbols(ctx context.Context) ([]entity.Symbol, error) {
	m.calls++
	return m.symbolsFn(ctx)
}

func TestDirectoryUsecase_SearchFreshSkipsRemote(t *testing.T) {
	t.Parallel()

	repo := &mockSymbolRepo{
		hasFreshFn: func(_ context.Context, cutoff time.Time) (bool, error) {
			assert.True(t, cutoff.Equal(fixedNow.Add(-DirectoryTTL)))
			return true, nil
		},
		searchFn: func(_ context.Context, query string) ([]entity.Symbol, error) {
			assert.Equal(t, "AAP", query)
			return []entity.Symbol{{Symbol: "AAPL"}}, nil
		},
	}
	source := &mockSymbolSource{}

	u := NewDirectoryUsecase(repo, source, notify.NewNotifier())
	u.now = func() time.Time { return fixedNow }

	got, err := u.SearchSymbols(context.Background(), "AAP")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Zero(t, source.calls, "fresh directory must not hit the remote source")
}

func TestDirectoryUsecase_SearchStaleRefreshesFirst(t *testing.T) {
	t.Parallel()

	var refreshed []entity.Symbol
	repo := &mockSymbolRepo{
		hasFreshFn: func(context.Context, time.Time) (bool, error) { return false, nil },
		refreshFn: func(_ context.Context, symbols []entity.Symbol) error {
			refreshed = symbols
			return nil
		},
		searchFn: func(context.Context, string) ([]entity.Symbol, error) {
			return []entity.Symbol{{Symbol: "MSFT"}}, nil
		},
	}
	source := &mockSymbolSource{
		symbolsFn: func(context.Context) ([]entity.Symbol, error) {
			return []entity.Symbol{{Symbol: "MSFT"}, {Symbol: "AAPL"}}, nil
		},
	}

	u := NewDirectoryUsecase(repo, source, notify.NewNotifier())
	u.now = func() time.Time { return fixedNow }

	_, err := u.SearchSymbols(context.Background(), "MS")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	require.Len(t, refreshed, 2)
	for _, s := range refreshed {
		assert.True(t, s.FetchTimestamp.Equal(fixedNow), "refresh must stamp the fetch time")
	}
}

func TestDirectoryUsecase_SearchRemoteFailure(t *testing.T) {
	t.Parallel()

	errRemote := errors.New("upstream down")
	repo := &mockSymbolRepo{
		hasFreshFn: func(context.Context, time.Time) (bool, error) { return false, nil },
	}
	source := &mockSymbolSource{
		symbolsFn: func(context.Context) ([]entity.Symbol, error) { return nil, errRemote },
	}

	u := NewDirectoryUsecase(repo, source, notify.NewNotifier())
	u.now = func() time.Time { return fixedNow }

	_, err := u.SearchSymbols(context.Background(), "AAPL")
	assert.ErrorIs(t, err, errRemote)
	assert.Zero(t, repo.refreshCalls, "a failed fetch must not touch the directory")
}

func TestDirectoryUsecase_SetTrackedDelegates(t *testing.T) {
	t.Parallel()

	var gotSymbol string
	var gotTracked bool
	repo := &mockSymbolRepo{
		setTrackedFn: func(_ context.Context, symbol string, tracked bool) error {
			gotSymbol, gotTracked = symbol, tracked
			return nil
		},
	}

	u := NewDirectoryUsecase(repo, &mockSymbolSource{}, notify.NewNotifier())
	require.NoError(t, u.SetTracked(context.Background(), "TSLA", true))
	assert.Equal(t, "TSLA", gotSymbol)
	assert.True(t, gotTracked)
}

func TestDirectoryUsecase_StreamTracked(t *testing.T) {
	t.Parallel()

	sets := [][]string{{"AAPL"}, {"AAPL", "TSLA"}}
	reads := 0
	repo := &mockSymbolRepo{
		trackedFn: func(context.Context) ([]string, error) {
			set := sets[min(reads, len(sets)-1)]
			reads++
			return set, nil
		},
	}
	notifier := notify.NewNotifier()

	u := NewDirectoryUsecase(repo, &mockSymbolSource{}, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := u.StreamTracked(ctx)

	got := <-out
	assert.Equal(t, []string{"AAPL"}, got)

	notifier.Notify(notify.TableTrackedSymbols)
	got = <-out
	assert.Equal(t, []string{"AAPL", "TSLA"}, got)

	cancel()
	for range out {
	}
}
