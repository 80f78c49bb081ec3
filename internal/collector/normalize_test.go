package collector

import (
	"testing"
	"time"

	"stockintel/pkg/news"

	"github.com/go-playground/assert/v2"
)

var testNow = time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)

func TestNormalizeFinnhub(t *testing.T) {
	items := []news.CompanyNewsItem{
		{
			ID:       "12345",
			Headline: "Acme posts record quarter",
			Summary:  "Revenue up 20% year over year.",
			URL:      "https://example.com/acme-q4",
			Source:   "Reuters",
			Datetime: 1698228000,
		},
	}

	articles := NormalizeFinnhub(items, testNow)

	assert.Equal(t, 1, len(articles))
	a := articles[0]
	assert.Equal(t, "12345", a.ID)
	assert.Equal(t, "Acme posts record quarter", a.Title)
	assert.Equal(t, "Revenue up 20% year over year.", a.Text)
	assert.Equal(t, "Reuters", a.Source)
	assert.Equal(t, "2023-10-25T10:00:00Z", a.PublishedAt)
	assert.Equal(t, "2026-02-26T12:00:00Z", a.IngestedAt)
	assert.Equal(t, "en", a.Language)
}

func TestNormalizeFinnhub_SynthesizesMissingID(t *testing.T) {
	items := []news.CompanyNewsItem{
		{Headline: "No id here", URL: "https://example.com/a", Datetime: 1698228000},
	}

	articles := NormalizeFinnhub(items, testNow)

	assert.Equal(t, 1, len(articles))
	assert.NotEqual(t, "", articles[0].ID)
	assert.Equal(t, "Finnhub", articles[0].Source)
}

func TestNormalizeFinnhub_SkipsMalformedItems(t *testing.T) {
	items := make([]news.CompanyNewsItem, 0, 10)
	for i := 0; i < 7; i++ {
		items = append(items, news.CompanyNewsItem{
			Headline: "Valid headline",
			URL:      "https://example.com/valid",
			Datetime: 1698228000,
		})
	}
	// Three malformed items: missing headline, missing url, missing both.
	items = append(items,
		news.CompanyNewsItem{URL: "https://example.com/no-headline"},
		news.CompanyNewsItem{Headline: "No URL"},
		news.CompanyNewsItem{},
	)

	articles := NormalizeFinnhub(items, testNow)

	assert.Equal(t, 7, len(articles))
}

func TestNormalizeNewsAPI_TextFallback(t *testing.T) {
	items := []news.SearchArticle{
		{
			Source:      news.SearchSource{Name: "Bloomberg"},
			Title:       "Has description",
			Description: "The description.",
			Content:     "The content.",
			URL:         "https://example.com/1",
			PublishedAt: "2026-02-20T08:00:00Z",
		},
		{
			Title:   "Only content",
			Content: "Fallback content.",
			URL:     "https://example.com/2",
		},
		{
			Title: "Neither",
			URL:   "https://example.com/3",
		},
	}

	articles := NormalizeNewsAPI(items, testNow)

	assert.Equal(t, 3, len(articles))
	assert.Equal(t, "The description.", articles[0].Text)
	assert.Equal(t, "Bloomberg", articles[0].Source)
	assert.Equal(t, "2026-02-20T08:00:00Z", articles[0].PublishedAt)
	assert.Equal(t, "Fallback content.", articles[1].Text)
	assert.Equal(t, "NewsAPI", articles[1].Source)
	// No publish date: falls back to ingestion time.
	assert.Equal(t, "2026-02-26T12:00:00Z", articles[1].PublishedAt)
	assert.Equal(t, "", articles[2].Text)
}

func TestNormalizeNewsAPI_FreshIDs(t *testing.T) {
	items := []news.SearchArticle{
		{Title: "A", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
	}

	articles := NormalizeNewsAPI(items, testNow)

	assert.Equal(t, 2, len(articles))
	assert.NotEqual(t, "", articles[0].ID)
	assert.NotEqual(t, articles[0].ID, articles[1].ID)
}

func TestNormalizeSerper(t *testing.T) {
	items := []news.WebResult{
		{
			Title:   "Acme in the news",
			Link:    "https://example.com/acme",
			Snippet: "A short snippet about Acme.",
		},
		{Link: "https://example.com/no-title"},
	}

	articles := NormalizeSerper(items, testNow)

	assert.Equal(t, 1, len(articles))
	a := articles[0]
	assert.Equal(t, "SerperWeb", a.Source)
	assert.Equal(t, "A short snippet about Acme.", a.Text)
	assert.Equal(t, "https://example.com/acme", a.URL)
	// No publication date from this provider.
	assert.Equal(t, "2026-02-26T12:00:00Z", a.PublishedAt)
}
