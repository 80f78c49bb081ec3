package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    "https://newsapi.org/v2",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Search queries the NewsAPI everything endpoint. Dates are YYYY-MM-DD.
func (c *NewsAPIClient) Search(ctx context.Context, query, from, to string) ([]SearchArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from)
	params.Set("to", to)
	params.Set("sortBy", "relevancy")
	params.Set("language", "en")
	params.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())

	var raw newsAPIResponse
	err := withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("newsapi status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("newsapi status %d: %s", resp.StatusCode, body))
		}

		return json.NewDecoder(resp.Body).Decode(&raw)
	})
	if err != nil {
		return nil, fmt.Errorf("newsapi search: %w", err)
	}

	return raw.Articles, nil
}

type newsAPIResponse struct {
	Status   string          `json:"status"`
	Articles []SearchArticle `json:"articles"`
}
