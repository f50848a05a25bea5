// Package router wires the feature handlers onto the HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	charthandler "stocksync/internal/feature/chart/transport/handler"
	companyhandler "stocksync/internal/feature/company/transport/handler"
	directoryhandler "stocksync/internal/feature/directory/transport/handler"
	newshandler "stocksync/internal/feature/news/transport/handler"
	quotehandler "stocksync/internal/feature/quotes/transport/handler"
	watchlisthandler "stocksync/internal/feature/watchlist/transport/handler"
)

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter builds the gin engine with every feature route mounted.
func NewRouter(
	quotes *quotehandler.QuoteHandler,
	chart *charthandler.ChartHandler,
	news *newshandler.NewsHandler,
	company *companyhandler.CompanyHandler,
	directory *directoryhandler.DirectoryHandler,
	watchlist *watchlisthandler.WatchlistHandler,
) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", Health)

	r.GET("/quotes", quotes.Batch)
	r.GET("/quotes/:symbol", quotes.Get)
	r.GET("/market/mostactive", quotes.MostActive)

	r.GET("/chart/:symbol", chart.Get)

	r.GET("/news", news.List)

	r.GET("/company/:symbol", company.Get)

	r.GET("/symbols", directory.Search)

	r.GET("/watchlist", watchlist.Get)
	r.GET("/watchlist/symbols", directory.ListTracked)
	r.PUT("/watchlist/:symbol", directory.Track)
	r.DELETE("/watchlist/:symbol", directory.Untrack)

	return r
}
