package collector

import (
	"context"
	"log/slog"
	"time"

	"stockintel/internal/model"
	"stockintel/pkg/news"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Fallback web search triggers when the raw article count from the two
// primary providers stays below this.
const lowArticleThreshold = 5

const fallbackResultCount = 5

// StructuredNewsSource is the primary company news + price provider.
type StructuredNewsSource interface {
	CompanyNews(ctx context.Context, ticker, from, to string) ([]news.CompanyNewsItem, error)
	Candles(ctx context.Context, ticker, resolution string, fromTs, toTs int64) (news.CandleSeries, error)
}

// ArticleSearchSource is the general article search provider.
type ArticleSearchSource interface {
	Search(ctx context.Context, query, from, to string) ([]news.SearchArticle, error)
}

// WebSearchSource is the recall-boosting web search fallback.
type WebSearchSource interface {
	SearchWeb(ctx context.Context, query string, numResults int) ([]news.WebResult, error)
}

// Bundle is the collector's output: a validated article set and an
// optional price summary. Articles may legitimately be empty.
type Bundle struct {
	Articles []model.Article     `json:"articles"`
	Prices   *model.PriceSummary `json:"prices"`
}

// Collector gathers raw items from the configured providers, normalizes,
// deduplicates, and validates them. Any source may be nil when its
// credential is unconfigured; it then contributes zero results.
type Collector struct {
	structured StructuredNewsSource
	search     ArticleSearchSource
	web        WebSearchSource
	validate   *validator.Validate
}

func New(structured StructuredNewsSource, search ArticleSearchSource, web WebSearchSource) *Collector {
	return &Collector{
		structured: structured,
		search:     search,
		web:        web,
		validate:   validator.New(),
	}
}

// Collect runs the full collection policy for one company/ticker. Provider
// failures are contained here: each one degrades to zero results from that
// provider and is logged, never propagated.
func (c *Collector) Collect(ctx context.Context, company, ticker, from, to string) Bundle {
	now := time.Now().UTC()

	var structuredRaw []news.CompanyNewsItem
	var searchRaw []news.SearchArticle

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if c.structured == nil {
			return nil
		}
		items, err := c.structured.CompanyNews(gctx, ticker, from, to)
		if err != nil {
			slog.Error("structured news collection failed", "ticker", ticker, "error", err)
			return nil
		}
		structuredRaw = items
		return nil
	})

	g.Go(func() error {
		if c.search == nil {
			return nil
		}
		items, err := c.search.Search(gctx, company+" "+ticker, from, to)
		if err != nil {
			slog.Error("article search collection failed", "ticker", ticker, "error", err)
			return nil
		}
		searchRaw = items
		return nil
	})

	g.Wait()

	articles := NormalizeFinnhub(structuredRaw, now)
	articles = append(articles, NormalizeNewsAPI(searchRaw, now)...)

	if len(structuredRaw)+len(searchRaw) < lowArticleThreshold && c.web != nil {
		slog.Info("low article count, triggering web search fallback", "ticker", ticker, "raw_count", len(structuredRaw)+len(searchRaw))
		results, err := c.web.SearchWeb(ctx, company+" "+ticker+" news", fallbackResultCount)
		if err != nil {
			slog.Error("web search collection failed", "ticker", ticker, "error", err)
		} else {
			articles = append(articles, NormalizeSerper(results, now)...)
		}
	}

	unique := Deduplicate(articles)
	valid := c.validArticles(unique)
	slog.Info("collection complete", "ticker", ticker, "raw", len(articles), "deduplicated", len(unique), "valid", len(valid))

	return Bundle{
		Articles: valid,
		Prices:   c.collectPrices(ctx, ticker, from, to),
	}
}

// validArticles drops any article that fails the structural contract.
func (c *Collector) validArticles(articles []model.Article) []model.Article {
	valid := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if err := c.validate.Struct(a); err != nil {
			slog.Warn("dropping invalid article", "url", a.URL, "error", err)
			continue
		}
		valid = append(valid, a)
	}
	return valid
}

// collectPrices fetches daily candles for the date range and summarizes
// them. Price context is optional: any failure yields nil, not an error.
func (c *Collector) collectPrices(ctx context.Context, ticker, from, to string) *model.PriceSummary {
	if c.structured == nil {
		return nil
	}

	fromTime, err := time.Parse("2006-01-02", from)
	if err != nil {
		slog.Error("price collection failed", "ticker", ticker, "error", err)
		return nil
	}
	toTime, err := time.Parse("2006-01-02", to)
	if err != nil {
		slog.Error("price collection failed", "ticker", ticker, "error", err)
		return nil
	}

	series, err := c.structured.Candles(ctx, ticker, "D", fromTime.Unix(), toTime.Unix())
	if err != nil {
		slog.Error("price collection failed", "ticker", ticker, "error", err)
		return nil
	}
	if series.Status != "ok" || len(series.Closes) == 0 {
		slog.Warn("no price data found", "ticker", ticker, "status", series.Status)
		return nil
	}

	return SummarizePrices(series.Closes)
}

// SummarizePrices derives the price summary from a close-price series.
func SummarizePrices(closes []float64) *model.PriceSummary {
	if len(closes) == 0 {
		return nil
	}

	summary := &model.PriceSummary{
		CurrentPrice: closes[len(closes)-1],
		StartPrice:   closes[0],
		High:         closes[0],
		Low:          closes[0],
	}

	for _, c := range closes {
		if c > summary.High {
			summary.High = c
		}
		if c < summary.Low {
			summary.Low = c
		}
	}

	if summary.StartPrice != 0 {
		summary.ChangePercent = (summary.CurrentPrice - summary.StartPrice) / summary.StartPrice * 100
	}

	return summary
}
