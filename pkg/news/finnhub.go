package news

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/cenkalti/backoff/v4"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

// CompanyNews fetches company news for a ticker. Dates are YYYY-MM-DD.
func (c *FinnhubClient) CompanyNews(ctx context.Context, ticker, from, to string) ([]CompanyNewsItem, error) {
	var res []finnhub.CompanyNews

	err := withRetry(ctx, func() error {
		var httpRes *http.Response
		var err error
		res, httpRes, err = c.client.CompanyNews(ctx).Symbol(ticker).From(from).To(to).Execute()
		return finnhubErr(httpRes, err)
	})
	if err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}

	items := make([]CompanyNewsItem, 0, len(res))
	for _, n := range res {
		item := CompanyNewsItem{
			Headline: n.GetHeadline(),
			Summary:  n.GetSummary(),
			URL:      n.GetUrl(),
			Source:   n.GetSource(),
			Datetime: n.GetDatetime(),
		}
		if n.Id != nil && *n.Id != 0 {
			item.ID = strconv.FormatInt(*n.Id, 10)
		}
		items = append(items, item)
	}

	return items, nil
}

// Candles fetches a close-price series for a ticker. Timestamps are UNIX
// seconds; resolution is one of 1, 5, 15, 30, 60, D, W, M.
func (c *FinnhubClient) Candles(ctx context.Context, ticker, resolution string, fromTs, toTs int64) (CandleSeries, error) {
	var res finnhub.StockCandles

	err := withRetry(ctx, func() error {
		var httpRes *http.Response
		var err error
		res, httpRes, err = c.client.StockCandles(ctx).
			Symbol(ticker).
			Resolution(resolution).
			From(fromTs).
			To(toTs).
			Execute()
		return finnhubErr(httpRes, err)
	})
	if err != nil {
		return CandleSeries{}, fmt.Errorf("finnhub candles: %w", err)
	}

	series := CandleSeries{Status: res.GetS()}
	for _, close := range res.GetC() {
		series.Closes = append(series.Closes, float64(close))
	}

	return series, nil
}

// finnhubErr classifies an SDK error for the retry policy. Client errors
// (bad token, bad symbol) are permanent; transport failures and 5xx are
// retryable.
func finnhubErr(res *http.Response, err error) error {
	if err == nil {
		return nil
	}
	if res != nil && res.StatusCode >= 400 && res.StatusCode < 500 {
		return backoff.Permanent(err)
	}
	return err
}
