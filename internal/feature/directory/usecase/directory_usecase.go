// Package usecase implements symbol directory search and watchlist
// membership.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"stocksync/internal/feature/directory/domain/entity"
	"stocksync/internal/shared/notify"
)

// DirectoryTTL is the maximum age of the cached symbol directory.
const DirectoryTTL = 24 * time.Hour

// SymbolRepository abstracts the local store for the symbol directory
// and the watchlist membership table.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type SymbolRepository interface {
	HasFresh(ctx context.Context, cutoff time.Time) (bool, error)
	Search(ctx context.Context, query string) ([]entity.Symbol, error)
	Refresh(ctx context.Context, symbols []entity.Symbol) error
	TrackedSymbols(ctx context.Context) ([]string, error)
	IsTracked(ctx context.Context, symbol string) (bool, error)
	SetTracked(ctx context.Context, symbol string, tracked bool) error
}

// SymbolSource abstracts the remote data provider for the directory.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]entity.Symbol, error)
}

// DirectoryUsecase serves directory searches against the local copy,
// replacing the copy wholesale once it goes stale. Watchlist membership
// lives in its own table and survives directory refreshes.
type DirectoryUsecase struct {
	repo     SymbolRepository
	source   SymbolSource
	notifier *notify.Notifier
	group    singleflight.Group
	now      func() time.Time
}

// NewDirectoryUsecase creates a DirectoryUsecase.
func NewDirectoryUsecase(repo SymbolRepository, source SymbolSource, notifier *notify.Notifier) *DirectoryUsecase {
	return &DirectoryUsecase{repo: repo, source: source, notifier: notifier, now: time.Now}
}

// SearchSymbols returns directory entries matching query, refreshing
// the local directory first when it is stale or empty.
func (u *DirectoryUsecase) SearchSymbols(ctx context.Context, query string) ([]entity.Symbol, error) {
	if err := u.ensureFresh(ctx); err != nil {
		return nil, err
	}
	return u.repo.Search(ctx, query)
}

func (u *DirectoryUsecase) ensureFresh(ctx context.Context) error {
	fresh, err := u.repo.HasFresh(ctx, u.now().Add(-DirectoryTTL))
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}

	_, err, _ = u.group.Do("directory", func() (any, error) {
		symbols, err := u.source.Symbols(ctx)
		if err != nil {
			return nil, err
		}
		stamp := u.now()
		for i := range symbols {
			symbols[i].FetchTimestamp = stamp
		}
		return nil, u.repo.Refresh(ctx, symbols)
	})
	return err
}

// SetTracked adds or removes a symbol from the watchlist. Repeated
// calls with the same arguments are no-ops.
func (u *DirectoryUsecase) SetTracked(ctx context.Context, symbol string, tracked bool) error {
	return u.repo.SetTracked(ctx, symbol, tracked)
}

// TrackedSymbols returns the current watchlist membership.
func (u *DirectoryUsecase) TrackedSymbols(ctx context.Context) ([]string, error) {
	return u.repo.TrackedSymbols(ctx)
}

// IsTracked reports whether symbol is on the watchlist.
func (u *DirectoryUsecase) IsTracked(ctx context.Context, symbol string) (bool, error) {
	return u.repo.IsTracked(ctx, symbol)
}

// StreamTracked emits the watchlist membership, then re-emits whenever
// it changes, until ctx is cancelled.
func (u *DirectoryUsecase) StreamTracked(ctx context.Context) <-chan []string {
	out := make(chan []string, 1)
	signals := u.notifier.Subscribe(ctx, notify.TableTrackedSymbols)

	go func() {
		defer close(out)
		for {
			symbols, err := u.repo.TrackedSymbols(ctx)
			if err != nil {
				slog.Error("tracked symbols stream read failed", "error", err)
			} else {
				select {
				case out <- symbols:
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
