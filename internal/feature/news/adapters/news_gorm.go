// Package adapters provides the store implementation for the news feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stocksync/internal/feature/news/domain/entity"
	"stocksync/internal/feature/news/usecase"
	"stocksync/internal/shared/notify"
)

type newsGorm struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

var _ usecase.NewsRepository = (*newsGorm)(nil)

// NewNewsRepository creates the GORM-backed news repository.
func NewNewsRepository(db *gorm.DB, notifier *notify.Notifier) *newsGorm {
	return &newsGorm{db: db, notifier: notifier}
}

// GetFresh returns the news rows fetched at or after cutoff, newest
// publication first.
func (r *newsGorm) GetFresh(ctx context.Context, cutoff time.Time) ([]entity.News, error) {
	var items []entity.News
	if err := r.db.WithContext(ctx).
		Where("fetch_timestamp >= ?", cutoff).
		Order("date DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Refresh replaces the whole news set in one transaction, so a reader
// sees either the old set or the new one, never the empty state in
// between.
func (r *newsGorm) Refresh(ctx context.Context, items []entity.News) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.News{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		// Fresh ids for the fresh set.
		for i := range items {
			items[i].ID = 0
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return err
	}
	r.notifier.Notify(notify.TableNews)
	return nil
}
