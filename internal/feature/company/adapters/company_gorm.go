// Package adapters provides the store implementation for the company feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksync/internal/feature/company/domain/entity"
	"stocksync/internal/feature/company/usecase"
	"stocksync/internal/shared/notify"
)

type companyGorm struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyRepository creates the GORM-backed company profile repository.
func NewCompanyRepository(db *gorm.DB, notifier *notify.Notifier) *companyGorm {
	return &companyGorm{db: db, notifier: notifier}
}

// GetFresh returns the profile for symbol if it was fetched at or after
// cutoff, or nil when absent or stale.
func (r *companyGorm) GetFresh(ctx context.Context, symbol string, cutoff time.Time) (*entity.CompanyInfo, error) {
	var info entity.CompanyInfo
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND fetch_timestamp >= ?", symbol, cutoff).
		First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Upsert fully replaces the profile row for the given symbol.
func (r *companyGorm) Upsert(ctx context.Context, info entity.CompanyInfo) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		UpdateAll: true,
	}).Create(&info).Error; err != nil {
		return err
	}
	r.notifier.Notify(notify.TableCompanyInfos)
	return nil
}
