package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type SerperClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		apiKey:     apiKey,
		baseURL:    "https://google.serper.dev/search",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SerperClient) Name() string {
	return "Serper"
}

// SearchWeb performs a web search and returns the organic results.
func (c *SerperClient) SearchWeb(ctx context.Context, query string, numResults int) ([]WebResult, error) {
	payload, err := json.Marshal(serperRequest{Q: query, Num: numResults})
	if err != nil {
		return nil, fmt.Errorf("serper payload: %w", err)
	}

	var raw serperResponse
	err = withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-API-KEY", c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("serper status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("serper status %d: %s", resp.StatusCode, body))
		}

		return json.NewDecoder(resp.Body).Decode(&raw)
	})
	if err != nil {
		return nil, fmt.Errorf("serper search: %w", err)
	}

	return raw.Organic, nil
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []WebResult `json:"organic"`
}
