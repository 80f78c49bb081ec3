package model

// Article is the canonical news/document record used throughout the
// pipeline. Timestamps are RFC3339 strings so they survive a round-trip
// through vector-store metadata and the LLM prompt unchanged.
type Article struct {
	ID          string `json:"id" validate:"required"`
	Source      string `json:"source" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Text        string `json:"text"`
	URL         string `json:"url" validate:"required,url"`
	PublishedAt string `json:"published_at" validate:"required"`
	Language    string `json:"language"`
	IngestedAt  string `json:"ingested_at" validate:"required"`
}

// PriceSummary is a derived aggregate over a close-price series. A nil
// *PriceSummary means no price context was available for the run.
type PriceSummary struct {
	CurrentPrice  float64 `json:"current_price"`
	StartPrice    float64 `json:"start_price"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	ChangePercent float64 `json:"change_percent"`
}
