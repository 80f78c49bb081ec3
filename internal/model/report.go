package model

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SnippetMetadata is the subset of Article fields carried through the
// vector store for citation display.
type SnippetMetadata struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Title       string `json:"title"`
}

// RetrievedSnippet is one similarity-search result, ephemeral per query.
type RetrievedSnippet struct {
	ID       string          `json:"id"`
	Snippet  string          `json:"snippet"`
	FullText string          `json:"full_text"`
	Metadata SnippetMetadata `json:"metadata"`
}

// Evidence ties a claim to a specific article id and URL. The id/url pair
// is instructed to be copied verbatim from a retrieved document; only the
// shape is validated here.
type Evidence struct {
	ArticleID string `json:"article_id" validate:"required"`
	Quote     string `json:"quote" validate:"required"`
	URL       string `json:"url" validate:"required,url"`
}

// AnalystReport is the final output artifact of a pipeline run.
type AnalystReport struct {
	Summary    string     `json:"summary" validate:"required"`
	Sentiment  string     `json:"sentiment" validate:"required,oneof=positive neutral negative"`
	KeyDrivers []string   `json:"key_drivers"`
	Risks      []string   `json:"risks"`
	Evidence   []Evidence `json:"evidence" validate:"dive"`
	Confidence float64    `json:"confidence" validate:"gte=0,lte=1"`
}

// FallbackReport returns the fixed, schema-valid degenerate report used
// whenever generation, parsing, or validation fails. It must never be
// possible to surface a malformed or absent report to the caller.
func FallbackReport() AnalystReport {
	return AnalystReport{
		Summary:    "Analysis failed due to technical error.",
		Sentiment:  SentimentNeutral,
		KeyDrivers: []string{},
		Risks:      []string{"Analysis Error"},
		Evidence:   []Evidence{},
		Confidence: 0.0,
	}
}

// StoredReport wraps an AnalystReport as persisted in Postgres.
type StoredReport struct {
	ID        int64         `json:"id"`
	Ticker    string        `json:"ticker"`
	Company   string        `json:"company"`
	Report    AnalystReport `json:"report"`
	CreatedAt string        `json:"created_at"`
}
