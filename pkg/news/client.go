package news

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// CompanyNewsItem is one raw item from the structured news provider.
// ID is empty when the provider did not assign one.
type CompanyNewsItem struct {
	ID       string
	Headline string
	Summary  string
	URL      string
	Source   string
	Datetime int64 // epoch seconds
}

// SearchArticle is one raw item from the general article search provider.
type SearchArticle struct {
	Source      SearchSource `json:"source"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Content     string       `json:"content"`
	URL         string       `json:"url"`
	PublishedAt string       `json:"publishedAt"`
}

type SearchSource struct {
	Name string `json:"name"`
}

// WebResult is one raw item from the web search fallback provider. It has
// no stable id and no publication timestamp.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// CandleSeries holds a close-price series. A Status other than "ok" means
// the provider returned no usable data.
type CandleSeries struct {
	Closes []float64
	Status string
}

const maxRetries = 2

// withRetry runs op with bounded exponential backoff. Wrap application
// errors in backoff.Permanent to stop early; transport errors and 5xx
// responses are retried until the attempt budget is spent.
func withRetry(ctx context.Context, op func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(op, bo)
}
