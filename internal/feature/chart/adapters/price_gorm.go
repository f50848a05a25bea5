// Package adapters provides the store implementation for the chart feature.
package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksync/internal/feature/chart/domain/entity"
	"stocksync/internal/feature/chart/usecase"
	"stocksync/internal/shared/notify"
)

const dateLayout = "2006-01-02"

type priceGorm struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

// NewPriceRepository creates the GORM-backed price repository.
func NewPriceRepository(db *gorm.DB, notifier *notify.Notifier) *priceGorm {
	return &priceGorm{db: db, notifier: notifier}
}

// PriceModel is the persisted form of entity.Price. Dates are stored as
// "2006-01-02" strings so range queries stay portable across SQLite and
// Postgres.
type PriceModel struct {
	ID     uint   `gorm:"primaryKey"`
	Symbol string `gorm:"size:32;not null;uniqueIndex:price_sym_date,priority:1"`
	Date   string `gorm:"size:10;not null;uniqueIndex:price_sym_date,priority:2"`

	Close         float64 `gorm:"not null"`
	Volume        int64   `gorm:"not null;default:0"`
	Change        float64 `gorm:"not null;default:0"`
	ChangePercent float64 `gorm:"not null;default:0"`

	NoDataDay         bool `gorm:"not null;default:false"`
	EarliestAvailable bool `gorm:"not null;default:false"`

	FetchTimestamp time.Time `gorm:"not null"`
}

// TableName maps PriceModel to the prices table.
func (PriceModel) TableName() string {
	return "prices"
}

func toModel(e entity.Price) PriceModel {
	return PriceModel{
		Symbol:            e.Symbol,
		Date:              e.Date.Format(dateLayout),
		Close:             e.Close,
		Volume:            e.Volume,
		Change:            e.Change,
		ChangePercent:     e.ChangePercent,
		NoDataDay:         e.NoDataDay,
		EarliestAvailable: e.EarliestAvailable,
		FetchTimestamp:    e.FetchTimestamp,
	}
}

func toEntity(m PriceModel) (entity.Price, error) {
	d, err := time.Parse(dateLayout, m.Date)
	if err != nil {
		return entity.Price{}, fmt.Errorf("corrupt price date %q: %w", m.Date, err)
	}
	return entity.Price{
		Symbol:            m.Symbol,
		Date:              d,
		Close:             m.Close,
		Volume:            m.Volume,
		Change:            m.Change,
		ChangePercent:     m.ChangePercent,
		NoDataDay:         m.NoDataDay,
		EarliestAvailable: m.EarliestAvailable,
		FetchTimestamp:    m.FetchTimestamp,
	}, nil
}

// FindRange returns the bars for symbol with first <= date <= last,
// ordered by date.
func (r *priceGorm) FindRange(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error) {
	var rows []PriceModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ? AND date BETWEEN ? AND ?", symbol, first.Format(dateLayout), last.Format(dateLayout)).
		Order("date").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Price, 0, len(rows))
	for _, m := range rows {
		e, err := toEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Upsert inserts or replaces bars keyed by (symbol, date).
func (r *priceGorm) Upsert(ctx context.Context, prices []entity.Price) error {
	if len(prices) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(prices))
	for _, e := range prices {
		ms = append(ms, toModel(e))
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"close", "volume", "change", "change_percent",
			"no_data_day", "earliest_available", "fetch_timestamp",
		}),
	}).Create(&ms).Error; err != nil {
		return err
	}
	r.notifier.Notify(notify.TablePrices)
	return nil
}
