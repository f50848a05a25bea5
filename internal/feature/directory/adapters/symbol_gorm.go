// Package adapters provides the store implementation for the directory feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksync/internal/feature/directory/domain/entity"
	"stocksync/internal/feature/directory/usecase"
	"stocksync/internal/shared/notify"
)

type symbolGorm struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository creates the GORM-backed directory repository.
func NewSymbolRepository(db *gorm.DB, notifier *notify.Notifier) *symbolGorm {
	return &symbolGorm{db: db, notifier: notifier}
}

// HasFresh reports whether any directory row was fetched at or after
// cutoff. The directory is refreshed as a whole, so one fresh row means
// the set is fresh.
func (r *symbolGorm) HasFresh(ctx context.Context, cutoff time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("fetch_timestamp >= ?", cutoff).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search returns directory entries whose symbol contains query.
func (r *symbolGorm) Search(ctx context.Context, query string) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("symbol LIKE ?", "%"+query+"%").
		Order("symbol").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Refresh replaces the whole directory in one transaction. The
// tracked_symbols table is untouched, so watchlist membership survives
// the replace.
func (r *symbolGorm) Refresh(ctx context.Context, symbols []entity.Symbol) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Symbol{}).Error; err != nil {
			return err
		}
		if len(symbols) == 0 {
			return nil
		}
		return tx.Create(&symbols).Error
	})
	if err != nil {
		return err
	}
	r.notifier.Notify(notify.TableSymbols)
	return nil
}

// TrackedSymbols returns the watchlist membership, ordered by symbol.
func (r *symbolGorm) TrackedSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.TrackedSymbol{}).
		Order("symbol").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// IsTracked reports whether symbol is on the watchlist.
func (r *symbolGorm) IsTracked(ctx context.Context, symbol string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.TrackedSymbol{}).
		Where("symbol = ?", symbol).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetTracked adds or removes a watchlist row. Both directions are
// idempotent: tracking an already-tracked symbol and untracking an
// unknown one are no-ops.
func (r *symbolGorm) SetTracked(ctx context.Context, symbol string, tracked bool) error {
	var err error
	if tracked {
		err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
			DoNothing: true,
		}).Create(&entity.TrackedSymbol{Symbol: symbol}).Error
	} else {
		err = r.db.WithContext(ctx).Delete(&entity.TrackedSymbol{Symbol: symbol}).Error
	}
	if err != nil {
		return err
	}
	r.notifier.Notify(notify.TableTrackedSymbols)
	return nil
}
