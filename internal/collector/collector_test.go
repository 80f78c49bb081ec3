package collector

import (
	"context"
	"errors"
	"testing"

	"stockintel/pkg/news"

	"github.com/go-playground/assert/v2"
)

type fakeStructured struct {
	items   []news.CompanyNewsItem
	series  news.CandleSeries
	newsErr error
	candErr error
}

func (f *fakeStructured) CompanyNews(ctx context.Context, ticker, from, to string) ([]news.CompanyNewsItem, error) {
	return f.items, f.newsErr
}

func (f *fakeStructured) Candles(ctx context.Context, ticker, resolution string, fromTs, toTs int64) (news.CandleSeries, error) {
	return f.series, f.candErr
}

type fakeSearch struct {
	items []news.SearchArticle
	err   error
}

func (f *fakeSearch) Search(ctx context.Context, query, from, to string) ([]news.SearchArticle, error) {
	return f.items, f.err
}

type fakeWeb struct {
	results []news.WebResult
	err     error
	called  bool
}

func (f *fakeWeb) SearchWeb(ctx context.Context, query string, numResults int) ([]news.WebResult, error) {
	f.called = true
	return f.results, f.err
}

func manyNewsItems(n int) []news.CompanyNewsItem {
	items := make([]news.CompanyNewsItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, news.CompanyNewsItem{
			ID:       string(rune('a' + i)),
			Headline: "Headline " + string(rune('a'+i)),
			URL:      "https://example.com/" + string(rune('a'+i)),
			Datetime: 1698228000,
		})
	}
	return items
}

func TestCollect_MergesAndValidates(t *testing.T) {
	structured := &fakeStructured{
		items:  manyNewsItems(3),
		series: news.CandleSeries{Closes: []float64{100, 110, 90}, Status: "ok"},
	}
	search := &fakeSearch{
		items: []news.SearchArticle{
			{Title: "Search hit", URL: "https://example.com/search", Description: "d"},
		},
	}
	web := &fakeWeb{
		results: []news.WebResult{
			{Title: "Web hit", Link: "https://example.com/web", Snippet: "s"},
		},
	}

	c := New(structured, search, web)
	bundle := c.Collect(context.Background(), "Acme", "ACME", "2026-02-01", "2026-02-26")

	// 3 + 1 raw items is below the threshold, so the fallback fires.
	assert.Equal(t, true, web.called)
	assert.Equal(t, 5, len(bundle.Articles))

	assert.NotEqual(t, nil, bundle.Prices)
	assert.Equal(t, 90.0, bundle.Prices.CurrentPrice)
	assert.Equal(t, -10.0, bundle.Prices.ChangePercent)
}

func TestCollect_NoFallbackWhenEnoughArticles(t *testing.T) {
	structured := &fakeStructured{
		items:  manyNewsItems(6),
		series: news.CandleSeries{Status: "no_data"},
	}
	web := &fakeWeb{}

	c := New(structured, &fakeSearch{}, web)
	bundle := c.Collect(context.Background(), "Acme", "ACME", "2026-02-01", "2026-02-26")

	assert.Equal(t, false, web.called)
	assert.Equal(t, 6, len(bundle.Articles))
	// Candle status other than "ok" means no price context.
	if bundle.Prices != nil {
		t.Errorf("expected nil prices, got %+v", bundle.Prices)
	}
}

func TestCollect_AllProvidersFail(t *testing.T) {
	structured := &fakeStructured{
		newsErr: errors.New("network down"),
		candErr: errors.New("network down"),
	}
	search := &fakeSearch{err: errors.New("network down")}
	web := &fakeWeb{err: errors.New("network down")}

	c := New(structured, search, web)
	bundle := c.Collect(context.Background(), "Acme", "ACME", "2026-02-01", "2026-02-26")

	assert.Equal(t, true, web.called)
	assert.Equal(t, 0, len(bundle.Articles))
	if bundle.Prices != nil {
		t.Errorf("expected nil prices, got %+v", bundle.Prices)
	}
}

func TestCollect_NilSources(t *testing.T) {
	c := New(nil, nil, nil)
	bundle := c.Collect(context.Background(), "Acme", "ACME", "2026-02-01", "2026-02-26")

	assert.Equal(t, 0, len(bundle.Articles))
	if bundle.Prices != nil {
		t.Errorf("expected nil prices, got %+v", bundle.Prices)
	}
}

func TestCollect_DropsArticlesFailingContract(t *testing.T) {
	structured := &fakeStructured{
		items: []news.CompanyNewsItem{
			{ID: "1", Headline: "Valid", URL: "https://example.com/ok", Datetime: 1698228000},
			// Passes normalization but fails the URL contract downstream.
			{ID: "2", Headline: "Bad URL", URL: "not a url", Datetime: 1698228000},
		},
	}

	c := New(structured, nil, nil)
	bundle := c.Collect(context.Background(), "Acme", "ACME", "2026-02-01", "2026-02-26")

	assert.Equal(t, 1, len(bundle.Articles))
	assert.Equal(t, "1", bundle.Articles[0].ID)
}

func TestSummarizePrices(t *testing.T) {
	summary := SummarizePrices([]float64{100, 110, 90})

	assert.Equal(t, 90.0, summary.CurrentPrice)
	assert.Equal(t, 100.0, summary.StartPrice)
	assert.Equal(t, 110.0, summary.High)
	assert.Equal(t, 90.0, summary.Low)
	assert.Equal(t, -10.0, summary.ChangePercent)
}

func TestSummarizePrices_ZeroStart(t *testing.T) {
	summary := SummarizePrices([]float64{0, 50})

	assert.Equal(t, 0.0, summary.ChangePercent)
	assert.Equal(t, 50.0, summary.CurrentPrice)
}

func TestSummarizePrices_Empty(t *testing.T) {
	if s := SummarizePrices(nil); s != nil {
		t.Errorf("expected nil summary, got %+v", s)
	}
}
