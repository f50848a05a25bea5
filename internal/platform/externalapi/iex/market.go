package iex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	chartentity "stocksync/internal/feature/chart/domain/entity"
	companyentity "stocksync/internal/feature/company/domain/entity"
	direntity "stocksync/internal/feature/directory/domain/entity"
	newsentity "stocksync/internal/feature/news/domain/entity"
	quoteentity "stocksync/internal/feature/quotes/domain/entity"
	"stocksync/internal/platform/externalapi/iex/dto"
)

const dateLayout = "2006-01-02"

// Symbols fetches the full instrument directory.
func (c *Client) Symbols(ctx context.Context) ([]direntity.Symbol, error) {
	var body []dto.SymbolResponse
	if err := c.get(ctx, "/ref-data/symbols", nil, &body); err != nil {
		return nil, err
	}

	symbols := make([]direntity.Symbol, 0, len(body))
	for _, v := range body {
		listed, err := time.Parse(dateLayout, v.Date)
		if err != nil {
			// Some listings carry no usable date; keep the entry.
			listed = time.Time{}
		}
		symbols = append(symbols, direntity.Symbol{
			Symbol:      v.Symbol,
			Name:        v.Name,
			ListingDate: listed,
			Type:        v.Type,
			Region:      v.Region,
			Currency:    v.Currency,
		})
	}
	return symbols, nil
}

// Quote fetches the current quote for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (quoteentity.Quote, error) {
	var body dto.QuoteResponse
	path := fmt.Sprintf("/stock/%s/quote", url.PathEscape(symbol))
	if err := c.get(ctx, path, nil, &body); err != nil {
		return quoteentity.Quote{}, err
	}
	return toQuote(body), nil
}

// BatchQuotes fetches quotes for several symbols in one call. The batch
// endpoint returns a map keyed by symbol with the quote nested one
// level deep; this unwraps it into a flat slice.
func (c *Client) BatchQuotes(ctx context.Context, symbols []string) ([]quoteentity.Quote, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("types", "quote")

	var body map[string]dto.BatchQuoteEntry
	if err := c.get(ctx, "/stock/market/batch", q, &body); err != nil {
		return nil, err
	}

	quotes := make([]quoteentity.Quote, 0, len(body))
	for _, entry := range body {
		quotes = append(quotes, toQuote(entry.Quote))
	}
	return quotes, nil
}

// MostActive fetches the top-N quotes by trading activity.
func (c *Client) MostActive(ctx context.Context, limit int) ([]quoteentity.Quote, error) {
	q := url.Values{}
	q.Set("listLimit", strconv.Itoa(limit))

	var body []dto.QuoteResponse
	if err := c.get(ctx, "/stock/market/list/mostactive", q, &body); err != nil {
		return nil, err
	}

	quotes := make([]quoteentity.Quote, 0, len(body))
	for _, v := range body {
		quotes = append(quotes, toQuote(v))
	}
	return quotes, nil
}

// Chart fetches historical daily bars for a symbol. rangePath is the
// provider's range segment (e.g. "5d", "1m", "3m", "1y"); bars exist
// only for actual trading days.
func (c *Client) Chart(ctx context.Context, symbol, rangePath string) ([]chartentity.Price, error) {
	var body []dto.PriceResponse
	path := fmt.Sprintf("/stock/%s/chart/%s", url.PathEscape(symbol), url.PathEscape(rangePath))
	if err := c.get(ctx, path, nil, &body); err != nil {
		return nil, err
	}

	prices := make([]chartentity.Price, 0, len(body))
	for _, v := range body {
		d, err := time.Parse(dateLayout, v.Date)
		if err != nil {
			return nil, fmt.Errorf("iex: parse bar date %q: %w", v.Date, err)
		}
		prices = append(prices, chartentity.Price{
			Symbol:        symbol,
			Date:          d,
			Close:         v.Close,
			Volume:        v.Volume,
			Change:        v.Change,
			ChangePercent: v.ChangePercent,
		})
	}
	return prices, nil
}

// News fetches up to perSymbolLimit news items for each given symbol
// through the batch endpoint and flattens the per-symbol map.
func (c *Client) News(ctx context.Context, symbols []string, perSymbolLimit int) ([]newsentity.News, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("types", "news")
	q.Set("last", strconv.Itoa(perSymbolLimit))

	var body map[string]dto.BatchNewsEntry
	if err := c.get(ctx, "/stock/market/batch", q, &body); err != nil {
		return nil, err
	}

	var items []newsentity.News
	for _, entry := range body {
		for _, v := range entry.News {
			items = append(items, newsentity.News{
				Date:       v.Datetime,
				Headline:   v.Headline,
				Source:     v.Source,
				URL:        v.URL,
				Summary:    v.Summary,
				Symbols:    v.Related,
				ImageURL:   v.Image,
				HasPaywall: v.HasPaywall,
			})
		}
	}
	return items, nil
}

// Company fetches the company profile for one symbol.
func (c *Client) Company(ctx context.Context, symbol string) (companyentity.CompanyInfo, error) {
	var body dto.CompanyResponse
	path := fmt.Sprintf("/stock/%s/company", url.PathEscape(symbol))
	if err := c.get(ctx, path, nil, &body); err != nil {
		return companyentity.CompanyInfo{}, err
	}

	address := body.Address
	if body.Address2 != "" {
		address += "\n" + body.Address2
	}
	return companyentity.CompanyInfo{
		Symbol:       body.Symbol,
		CompanyName:  body.CompanyName,
		Exchange:     body.Exchange,
		Industry:     body.Industry,
		Website:      body.Website,
		Description:  body.Description,
		CEO:          body.CEO,
		SecurityName: body.SecurityName,
		Sector:       body.Sector,
		Employees:    body.Employees,
		Address:      address,
		State:        body.State,
		City:         body.City,
		Zip:          body.Zip,
		Country:      body.Country,
	}, nil
}

// toQuote converts a quote payload into the domain entity. The caller
// stamps FetchTimestamp before persisting.
func toQuote(v dto.QuoteResponse) quoteentity.Quote {
	return quoteentity.Quote{
		Symbol:                v.Symbol,
		CompanyName:           v.CompanyName,
		PrimaryExchange:       v.PrimaryExchange,
		OpenPrice:             v.Open,
		ClosePrice:            v.Close,
		HighPrice:             v.High,
		LowPrice:              v.Low,
		LatestPrice:           v.LatestPrice,
		LatestSource:          v.LatestSource,
		LatestTime:            v.LatestUpdate,
		LatestVolume:          v.LatestVolume,
		ExtendedPrice:         v.ExtendedPrice,
		ExtendedChange:        v.ExtendedChange,
		ExtendedChangePercent: v.ExtendedChangePercent,
		PreviousClose:         v.PreviousClose,
		PreviousVolume:        v.PreviousVolume,
		Change:                v.Change,
		ChangePercent:         v.ChangePercent,
		Volume:                v.Volume,
		AvgTotalVolume:        v.AvgTotalVolume,
		MarketCap:             v.MarketCap,
		PERatio:               v.PERatio,
		Week52High:            v.Week52High,
		Week52Low:             v.Week52Low,
		YTDChange:             v.YTDChange,
		IsUSMarketOpen:        v.IsUSMarketOpen,
	}
}
