package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"stocksync/internal/app/router"
	chartadapters "stocksync/internal/feature/chart/adapters"
	charthandler "stocksync/internal/feature/chart/transport/handler"
	chartusecase "stocksync/internal/feature/chart/usecase"
	companyadapters "stocksync/internal/feature/company/adapters"
	companyhandler "stocksync/internal/feature/company/transport/handler"
	companyusecase "stocksync/internal/feature/company/usecase"
	directoryadapters "stocksync/internal/feature/directory/adapters"
	directoryhandler "stocksync/internal/feature/directory/transport/handler"
	directoryusecase "stocksync/internal/feature/directory/usecase"
	newsadapters "stocksync/internal/feature/news/adapters"
	newshandler "stocksync/internal/feature/news/transport/handler"
	newsusecase "stocksync/internal/feature/news/usecase"
	quoteadapters "stocksync/internal/feature/quotes/adapters"
	quotehandler "stocksync/internal/feature/quotes/transport/handler"
	quotesusecase "stocksync/internal/feature/quotes/usecase"
	watchlisthandler "stocksync/internal/feature/watchlist/transport/handler"
	watchlistusecase "stocksync/internal/feature/watchlist/usecase"
	"stocksync/internal/platform/cache"
	platformdb "stocksync/internal/platform/db"
	"stocksync/internal/platform/externalapi/iex"
	platformredis "stocksync/internal/platform/redis"
	"stocksync/internal/shared/notify"
)

func main() {
	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Remote source
	source := iex.NewClient(iex.LoadConfig(), nil)

	// Table change signals
	notifier := notify.NewNotifier()

	// Repositories
	quoteRepo := quoteadapters.NewQuoteRepository(db, notifier)
	priceRepo := chartadapters.NewPriceRepository(db, notifier)
	newsRepo := newsadapters.NewNewsRepository(db, notifier)
	companyRepo := companyadapters.NewCompanyRepository(db, notifier)
	symbolRepo := directoryadapters.NewSymbolRepository(db, notifier)

	// Redis read-through cache for chart windows
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, 0, priceRepo, "prices")

	// Usecases
	quotesUC := quotesusecase.NewQuotesUsecase(quoteRepo, source, notifier)
	chartUC := chartusecase.NewChartUsecase(cachedPriceRepo, source, notifier)
	newsUC := newsusecase.NewNewsUsecase(newsRepo, source, notifier)
	companyUC := companyusecase.NewCompanyUsecase(companyRepo, source)
	directoryUC := directoryusecase.NewDirectoryUsecase(symbolRepo, source, notifier)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(directoryUC, quotesUC, chartUC, notifier)

	// Handlers
	quotesH := quotehandler.NewQuoteHandler(quotesUC)
	chartH := charthandler.NewChartHandler(chartUC)
	newsH := newshandler.NewNewsHandler(newsUC)
	companyH := companyhandler.NewCompanyHandler(companyUC)
	directoryH := directoryhandler.NewDirectoryHandler(directoryUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC)

	r := router.NewRouter(quotesH, chartH, newsH, companyH, directoryH, watchlistH)

	if os.Getenv("IEX_PUBLISHABLE_TOKEN") == "" {
		log.Println("[WARN] IEX_PUBLISHABLE_TOKEN is not set. Remote fetches will be rejected.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
