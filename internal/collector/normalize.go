package collector

import (
	"log/slog"
	"time"

	"stockintel/internal/model"
	"stockintel/pkg/news"

	"github.com/google/uuid"
)

// Source label for articles collected through the web search fallback.
const serperSource = "SerperWeb"

// NormalizeFinnhub maps structured-news items to canonical Articles.
// Items missing a headline or URL are skipped individually; a single
// malformed item never aborts the batch.
func NormalizeFinnhub(items []news.CompanyNewsItem, now time.Time) []model.Article {
	ingested := now.Format(time.RFC3339)

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		if item.Headline == "" || item.URL == "" {
			slog.Warn("skipping malformed finnhub item", "url", item.URL)
			continue
		}

		publishedAt := ingested
		if item.Datetime > 0 {
			publishedAt = time.Unix(item.Datetime, 0).UTC().Format(time.RFC3339)
		}

		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}

		source := item.Source
		if source == "" {
			source = "Finnhub"
		}

		articles = append(articles, model.Article{
			ID:          id,
			Source:      source,
			Title:       item.Headline,
			Text:        item.Summary,
			URL:         item.URL,
			PublishedAt: publishedAt,
			Language:    "en",
			IngestedAt:  ingested,
		})
	}

	return articles
}

// NormalizeNewsAPI maps article-search items to canonical Articles. The
// provider assigns no stable ids, so every article gets a fresh one. Body
// text falls back description → content → empty.
func NormalizeNewsAPI(items []news.SearchArticle, now time.Time) []model.Article {
	ingested := now.Format(time.RFC3339)

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.URL == "" {
			slog.Warn("skipping malformed newsapi item", "url", item.URL)
			continue
		}

		text := item.Description
		if text == "" {
			text = item.Content
		}

		source := item.Source.Name
		if source == "" {
			source = "NewsAPI"
		}

		publishedAt := item.PublishedAt
		if publishedAt == "" {
			publishedAt = ingested
		}

		articles = append(articles, model.Article{
			ID:          uuid.NewString(),
			Source:      source,
			Title:       item.Title,
			Text:        text,
			URL:         item.URL,
			PublishedAt: publishedAt,
			Language:    "en",
			IngestedAt:  ingested,
		})
	}

	return articles
}

// NormalizeSerper maps web search results to canonical Articles. The
// provider gives no publication date, so ingestion time stands in.
func NormalizeSerper(items []news.WebResult, now time.Time) []model.Article {
	ingested := now.Format(time.RFC3339)

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			slog.Warn("skipping malformed serper item", "link", item.Link)
			continue
		}

		articles = append(articles, model.Article{
			ID:          uuid.NewString(),
			Source:      serperSource,
			Title:       item.Title,
			Text:        item.Snippet,
			URL:         item.Link,
			PublishedAt: ingested,
			Language:    "en",
			IngestedAt:  ingested,
		})
	}

	return articles
}
