// Package usecase implements the cache-or-fetch policy for news.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"stocksync/internal/feature/news/domain/entity"
	"stocksync/internal/shared/notify"
)

const (
	// NewsTTL is the maximum age of a cached news set.
	NewsTTL = 2 * time.Hour
	// DefaultPerSymbolLimit bounds how many items are requested per
	// symbol on refresh.
	DefaultPerSymbolLimit = 5
)

// NewsRepository abstracts the local store for news.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type NewsRepository interface {
	GetFresh(ctx context.Context, cutoff time.Time) ([]entity.News, error)
	Refresh(ctx context.Context, items []entity.News) error
}

// NewsSource abstracts the remote data provider for news.
type NewsSource interface {
	News(ctx context.Context, symbols []string, perSymbolLimit int) ([]entity.News, error)
}

// NewsUsecase serves the cached news set, replacing it wholesale from
// the remote source once it goes stale.
type NewsUsecase struct {
	repo     NewsRepository
	source   NewsSource
	notifier *notify.Notifier
	group    singleflight.Group
	now      func() time.Time
}

// NewNewsUsecase creates a NewsUsecase.
func NewNewsUsecase(repo NewsRepository, source NewsSource, notifier *notify.Notifier) *NewsUsecase {
	return &NewsUsecase{repo: repo, source: source, notifier: notifier, now: time.Now}
}

// GetNews returns news for the given symbols. A fresh cached set is
// served as-is; a stale or empty one triggers one remote fetch whose
// result replaces the entire set atomically.
func (u *NewsUsecase) GetNews(ctx context.Context, symbols []string) ([]entity.News, error) {
	cached, err := u.repo.GetFresh(ctx, u.now().Add(-NewsTTL))
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	v, err, _ := u.group.Do("news", func() (any, error) {
		items, err := u.source.News(ctx, symbols, DefaultPerSymbolLimit)
		if err != nil {
			return nil, err
		}
		stamp := u.now()
		for i := range items {
			items[i].FetchTimestamp = stamp
		}
		if err := u.repo.Refresh(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.News), nil
}

// StreamNews emits the news set, then re-emits whenever the news table
// changes, until ctx is cancelled.
func (u *NewsUsecase) StreamNews(ctx context.Context, symbols []string) <-chan []entity.News {
	out := make(chan []entity.News, 1)
	signals := u.notifier.Subscribe(ctx, notify.TableNews)

	go func() {
		defer close(out)
		for {
			items, err := u.GetNews(ctx, symbols)
			if err != nil {
				slog.Error("news stream refresh failed", "error", err)
			} else {
				select {
				case out <- items:
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
