// Package adapters provides the store implementations for the quotes feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksync/internal/feature/quotes/domain/entity"
	"stocksync/internal/feature/quotes/usecase"
	"stocksync/internal/shared/notify"
)

// rankingID is the primary key of the singleton ranking row.
const rankingID = 1

type quoteGorm struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

var _ usecase.QuoteRepository = (*quoteGorm)(nil)

// NewQuoteRepository creates the GORM-backed quote repository. notifier
// may be nil when no streaming readers exist (tests, one-shot tools).
func NewQuoteRepository(db *gorm.DB, notifier *notify.Notifier) *quoteGorm {
	return &quoteGorm{db: db, notifier: notifier}
}

// GetFresh returns the quote for symbol if it was fetched at or after
// cutoff, or nil when absent or stale.
func (r *quoteGorm) GetFresh(ctx context.Context, symbol string, cutoff time.Time) (*entity.Quote, error) {
	var q entity.Quote
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND fetch_timestamp >= ?", symbol, cutoff).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetFreshSet returns the quotes among symbols fetched at or after cutoff.
func (r *quoteGorm) GetFreshSet(ctx context.Context, symbols []string, cutoff time.Time) ([]entity.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	var quotes []entity.Quote
	if err := r.db.WithContext(ctx).
		Where("symbol IN ? AND fetch_timestamp >= ?", symbols, cutoff).
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// Upsert replaces the rows for the given quotes. A conflicting symbol's
// previous row is fully overwritten, never field-merged.
func (r *quoteGorm) Upsert(ctx context.Context, quotes []entity.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		UpdateAll: true,
	}).Create(&quotes).Error; err != nil {
		return err
	}
	r.notifier.Notify(notify.TableQuotes)
	return nil
}

// GetRanking returns the singleton most-active ranking row, or nil when
// it has never been written.
func (r *quoteGorm) GetRanking(ctx context.Context) (*entity.MostActiveRanking, error) {
	var ranking entity.MostActiveRanking
	err := r.db.WithContext(ctx).First(&ranking, rankingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

// RefreshMostActive atomically clears the previous most-active flags,
// replaces the ranking row and upserts the new top-active quotes, so a
// concurrent reader sees either the old set or the new one.
func (r *quoteGorm) RefreshMostActive(ctx context.Context, ranking entity.MostActiveRanking, quotes []entity.Quote) error {
	ranking.ID = rankingID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Quote{}).
			Where("is_top_active = ?", true).
			Update("is_top_active", false).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&ranking).Error; err != nil {
			return err
		}
		if len(quotes) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			UpdateAll: true,
		}).Create(&quotes).Error
	})
	if err != nil {
		return err
	}
	r.notifier.Notify(notify.TableQuotes, notify.TableMostActive)
	return nil
}
