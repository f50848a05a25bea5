package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"stocksync/internal/feature/chart/domain/entity"
)

type mockPriceRepository struct {
	findRangeFn func(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error)
	upsertFn    func(ctx context.Context, prices []entity.Price) error
}

func (m *mockPriceRepository) FindRange(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error) {
	if m.findRangeFn != nil {
		return m.findRangeFn(ctx, symbol, first, last)
	}
	return nil, nil
}

func (m *mockPriceRepository) Upsert(ctx context.Context, prices []entity.Price) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, prices)
	}
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewCachingPriceRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingPriceRepository(nil, 0, &mockPriceRepository{}, "")

	if repo.ttl != 5*time.Minute {
		t.Errorf("expected default TTL 5m, got %v", repo.ttl)
	}
	if repo.namespace != "prices" {
		t.Errorf("expected default namespace prices, got %q", repo.namespace)
	}
}

func TestCachingPriceRepository_FindRange_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Price{{Symbol: "AAPL", Date: day(2024, 1, 2), Close: 102}}
	inner := &mockPriceRepository{
		findRangeFn: func(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error) {
			return expected, nil
		},
	}

	repo := NewCachingPriceRepository(nil, 5*time.Minute, inner, "prices")

	prices, err := repo.FindRange(context.Background(), "AAPL", day(2024, 1, 1), day(2024, 1, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 1 {
		t.Errorf("expected 1 bar, got %d", len(prices))
	}
}

func TestCachingPriceRepository_FindRange_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Price{{Symbol: "AAPL", Date: day(2024, 1, 2), Close: 102}}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("prices:AAPL:2024-01-01:2024-01-07").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockPriceRepository{
		findRangeFn: func(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")
	prices, err := repo.FindRange(context.Background(), "AAPL", day(2024, 1, 1), day(2024, 1, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(prices) != 1 {
		t.Errorf("expected 1 bar, got %d", len(prices))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPriceRepository_FindRange_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Price{{Symbol: "AAPL", Date: day(2024, 1, 2), Close: 102}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("prices:AAPL:2024-01-01:2024-01-07").RedisNil()
	mock.ExpectSet("prices:AAPL:2024-01-01:2024-01-07", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPriceRepository{
		findRangeFn: func(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error) {
			return expected, nil
		},
	}

	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")
	prices, err := repo.FindRange(context.Background(), "AAPL", day(2024, 1, 1), day(2024, 1, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 1 {
		t.Errorf("expected 1 bar, got %d", len(prices))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPriceRepository_FindRange_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("prices:AAPL:2024-01-01:2024-01-07").RedisNil()

	inner := &mockPriceRepository{
		findRangeFn: func(ctx context.Context, symbol string, first, last time.Time) ([]entity.Price, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")
	_, err := repo.FindRange(context.Background(), "AAPL", day(2024, 1, 1), day(2024, 1, 7))
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
}

func TestCachingPriceRepository_Upsert_InvalidatesSymbol(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "prices:AAPL:*", 200).SetVal([]string{"prices:AAPL:2024-01-01:2024-01-07"}, 0)
	mock.ExpectDel("prices:AAPL:2024-01-01:2024-01-07").SetVal(1)

	upserted := false
	inner := &mockPriceRepository{
		upsertFn: func(ctx context.Context, prices []entity.Price) error {
			upserted = true
			return nil
		},
	}

	repo := NewCachingPriceRepository(rdb, 5*time.Minute, inner, "prices")
	err := repo.Upsert(context.Background(), []entity.Price{{Symbol: "AAPL", Date: day(2024, 1, 2)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !upserted {
		t.Error("inner upsert must run before invalidation")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
