// Command warm pre-populates the local store: the symbol directory,
// the most-active set, and a weekly chart window per tracked symbol.
// Run it before market open so the first interactive reads hit cache.
package main

import (
	"context"
	"log"
	"time"

	chartadapters "stocksync/internal/feature/chart/adapters"
	chartusecase "stocksync/internal/feature/chart/usecase"
	directoryadapters "stocksync/internal/feature/directory/adapters"
	directoryusecase "stocksync/internal/feature/directory/usecase"
	quoteadapters "stocksync/internal/feature/quotes/adapters"
	quotesusecase "stocksync/internal/feature/quotes/usecase"
	platformdb "stocksync/internal/platform/db"
	"stocksync/internal/platform/externalapi/iex"
	"stocksync/internal/shared/notify"
	"stocksync/internal/shared/ratelimiter"
)

func main() {
	db := platformdb.OpenDB()
	source := iex.NewClient(iex.LoadConfig(), nil)
	notifier := notify.NewNotifier()

	symbolRepo := directoryadapters.NewSymbolRepository(db, notifier)
	quoteRepo := quoteadapters.NewQuoteRepository(db, notifier)
	priceRepo := chartadapters.NewPriceRepository(db, notifier)

	directoryUC := directoryusecase.NewDirectoryUsecase(symbolRepo, source, notifier)
	quotesUC := quotesusecase.NewQuotesUsecase(quoteRepo, source, notifier)
	chartUC := chartusecase.NewChartUsecase(priceRepo, source, notifier)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Directory first so searches work offline.
	if _, err := directoryUC.SearchSymbols(ctx, ""); err != nil {
		log.Fatal("failed to warm symbol directory:", err)
	}

	if _, err := quotesUC.GetMostActive(ctx); err != nil {
		log.Fatal("failed to warm most-active set:", err)
	}

	tracked, err := directoryUC.TrackedSymbols(ctx)
	if err != nil {
		log.Fatal("failed to load tracked symbols:", err)
	}

	if len(tracked) > 0 {
		if _, err := quotesUC.GetQuotes(ctx, tracked); err != nil {
			log.Printf("failed to warm tracked quotes: %v", err)
		}
	}

	// Free-tier chart quota.
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	for _, symbol := range tracked {
		limiter.WaitIfNeeded()
		if _, err := chartUC.GetChart(ctx, symbol, chartusecase.RangeWeek); err != nil {
			log.Printf("failed to warm chart for %s: %v", symbol, err)
		}
	}

	log.Println("warm ok")
}
