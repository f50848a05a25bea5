// Package usecase implements the calendar gap-filling engine for
// historical price series.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"stocksync/internal/feature/chart/domain/entity"
	"stocksync/internal/shared/notify"
)

// Range selects the calendar span of a chart request.
type Range string

// Supported chart ranges.
const (
	RangeWeek        Range = "1w"
	RangeMonth       Range = "1m"
	RangeThreeMonths Range = "3m"
	RangeYear        Range = "1y"
)

// exchangeTimezone is the trading timezone the request window is
// anchored to.
const exchangeTimezone = "America/New_York"

// sessionDataHour: the provider does not publish the most recent
// session's bar before 04:00 exchange-local time, so before that hour
// the window ends one day earlier.
const sessionDataHour = 4

// ErrNoData is returned when the provider has no bars at all for the
// requested symbol and range.
var ErrNoData = errors.New("no trading data for range")

// ParseRange validates a range string.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeWeek, RangeMonth, RangeThreeMonths, RangeYear:
		return Range(s), nil
	}
	return "", fmt.Errorf("unknown chart range %q", s)
}

// providerPath maps a Range onto the provider's range path segment.
func (r Range) providerPath() string {
	switch r {
	case RangeWeek:
		return "5d"
	case RangeMonth:
		return "1m"
	case RangeThreeMonths:
		return "3m"
	case RangeYear:
		return "1y"
	}
	return string(r)
}

// firstDate subtracts the range's calendar duration from last and
// advances one day, making the window inclusive of both ends.
func (r Range) firstDate(last time.Time) time.Time {
	var first time.Time
	switch r {
	case RangeWeek:
		first = last.AddDate(0, 0, -7)
	case RangeMonth:
		first = last.AddDate(0, -1, 0)
	case RangeThreeMonths:
		first = last.AddDate(0, -3, 0)
	case RangeYear:
		first = last.AddDate(-1, 0, 0)
	default:
		first = last.AddDate(0, 0, -7)
	}
	return first.AddDate(0, 0, 1)
}

// PriceRepository abstracts the local store for daily bars.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type PriceRepository interface {
	FindRange(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error)
	Upsert(ctx context.Context, prices []entity.Price) error
}

// PriceSource abstracts the remote data provider for daily bars.
type PriceSource interface {
	Chart(ctx context.Context, symbol, rangePath string) ([]entity.Price, error)
}

// ChartUsecase serves historical price windows with exactly one row per
// calendar day, synthesizing no-data bars for closed days.
type ChartUsecase struct {
	repo     PriceRepository
	source   PriceSource
	notifier *notify.Notifier
	group    singleflight.Group
	loc      *time.Location
	now      func() time.Time
}

// NewChartUsecase creates a ChartUsecase.
func NewChartUsecase(repo PriceRepository, source PriceSource, notifier *notify.Notifier) *ChartUsecase {
	loc, err := time.LoadLocation(exchangeTimezone)
	if err != nil {
		// Running without tzdata; window math degrades to UTC.
		slog.Warn("exchange timezone unavailable, using UTC", "timezone", exchangeTimezone, "error", err)
		loc = time.UTC
	}
	return &ChartUsecase{repo: repo, source: source, notifier: notifier, loc: loc, now: time.Now}
}

// window computes the inclusive [first, last] civil-date window for a
// range. last is yesterday in the exchange's timezone, or two days back
// before sessionDataHour.
func (u *ChartUsecase) window(r Range) (first, last time.Time) {
	local := u.now().In(u.loc)
	back := 1
	if local.Hour() < sessionDataHour {
		back = 2
	}
	last = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -back)
	return r.firstDate(last), last
}

// daysInclusive counts calendar days from first to last inclusive.
func daysInclusive(first, last time.Time) int {
	return int(last.Sub(first).Hours()/24) + 1
}

// GetChart returns the daily bars for symbol across the range's window.
// A cached window already holding one row per calendar day is served
// as-is; otherwise the provider's trading-day bars are fetched, the
// calendar gaps are filled with synthetic bars, and the completed
// window is persisted and returned.
func (u *ChartUsecase) GetChart(ctx context.Context, symbol string, r Range) ([]entity.Price, error) {
	first, last := u.window(r)

	cached, err := u.repo.FindRange(ctx, symbol, first, last)
	if err != nil {
		return nil, err
	}
	if len(cached) == daysInclusive(first, last) {
		return cached, nil
	}

	v, err, _ := u.group.Do("chart:"+symbol+":"+string(r), func() (any, error) {
		bars, err := u.source.Chart(ctx, symbol, r.providerPath())
		if err != nil {
			return nil, err
		}
		filled, err := fillCalendarGaps(symbol, first, last, bars, u.now())
		if err != nil {
			return nil, err
		}
		if err := u.repo.Upsert(ctx, filled); err != nil {
			return nil, err
		}
		return filled, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Price), nil
}

// StreamChart emits the chart for symbol, then re-emits whenever the
// prices table changes, until ctx is cancelled.
func (u *ChartUsecase) StreamChart(ctx context.Context, symbol string, r Range) <-chan []entity.Price {
	out := make(chan []entity.Price, 1)
	signals := u.notifier.Subscribe(ctx, notify.TablePrices)

	go func() {
		defer close(out)
		for {
			prices, err := u.GetChart(ctx, symbol, r)
			if err != nil {
				slog.Error("chart stream refresh failed", "symbol", symbol, "range", r, "error", err)
			} else {
				select {
				case out <- prices:
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

// fillCalendarGaps completes [first, last] to one bar per calendar day.
// Real bars keep their data; every other day gets a synthetic bar with
// NoDataDay set, zero volume and change, and a close carried forward
// from the nearest preceding bar. Days before the first real bar carry
// that bar's close backward, and the first real bar is marked
// EarliestAvailable when the provider's series starts inside the
// window.
func fillCalendarGaps(symbol string, first, last time.Time, bars []entity.Price, stamp time.Time) ([]entity.Price, error) {
	byDate := make(map[string]entity.Price, len(bars))
	var firstReal *entity.Price
	for i := range bars {
		bar := bars[i]
		if bar.Date.Before(first) || bar.Date.After(last) {
			continue
		}
		byDate[bar.Date.Format("2006-01-02")] = bar
		if firstReal == nil || bar.Date.Before(firstReal.Date) {
			firstReal = &bars[i]
		}
	}
	if firstReal == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	out := make([]entity.Price, 0, daysInclusive(first, last))
	carry := firstReal.Close
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		bar, ok := byDate[d.Format("2006-01-02")]
		if ok {
			bar.Symbol = symbol
			if bar.Date.Equal(firstReal.Date) && firstReal.Date.After(first) {
				bar.EarliestAvailable = true
			}
			carry = bar.Close
		} else {
			bar = entity.Price{
				Symbol:    symbol,
				Date:      d,
				Close:     carry,
				NoDataDay: true,
			}
		}
		bar.FetchTimestamp = stamp
		out = append(out, bar)
	}
	return out, nil
}
