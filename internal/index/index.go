// Package index wraps an embedded vector store with per-ticker namespaces.
// Each ticker gets its own collection so retrieval can never leak documents
// across companies.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"stockintel/internal/model"

	"github.com/philippgille/chromem-go"
)

// Snippet prefix length for retrieved documents.
const snippetLength = 500

type Index struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
}

// New opens (or creates) a persistent vector store at path.
func New(path string, embed chromem.EmbeddingFunc) (*Index, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}
	return &Index{db: db, embed: embed}, nil
}

// NewInMemory creates a non-persistent index, used in tests.
func NewInMemory(embed chromem.EmbeddingFunc) *Index {
	return &Index{db: chromem.NewDB(), embed: embed}
}

func collectionName(ticker string) string {
	return "ticker_" + strings.ToLower(ticker)
}

// Ingest embeds and upserts articles into the ticker's collection, keyed by
// article id. Re-running ingestion for the same articles overwrites rather
// than duplicates.
func (ix *Index) Ingest(ctx context.Context, ticker string, articles []model.Article) error {
	if len(articles) == 0 {
		return nil
	}

	name := collectionName(ticker)
	col, err := ix.db.GetOrCreateCollection(name, nil, ix.embed)
	if err != nil {
		return fmt.Errorf("ensure collection %s: %w", name, err)
	}

	docs := make([]chromem.Document, 0, len(articles))
	for _, a := range articles {
		docs = append(docs, chromem.Document{
			ID:      a.ID,
			Content: a.Title + "\n" + a.Text,
			Metadata: map[string]string{
				"source":       a.Source,
				"url":          a.URL,
				"published_at": a.PublishedAt,
				"title":        a.Title,
			},
		})
	}

	if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("upsert into %s: %w", name, err)
	}

	slog.Info("ingested documents", "collection", name, "count", len(docs))
	return nil
}

// Query embeds the query text and returns the topK nearest documents in
// similarity-descending order. A namespace that was never ingested yields
// an empty result, not an error.
func (ix *Index) Query(ctx context.Context, ticker, text string, topK int) ([]model.RetrievedSnippet, error) {
	name := collectionName(ticker)

	col := ix.db.GetCollection(name, ix.embed)
	if col == nil {
		slog.Warn("collection not found", "collection", name)
		return []model.RetrievedSnippet{}, nil
	}

	count := col.Count()
	if count == 0 || topK <= 0 {
		return []model.RetrievedSnippet{}, nil
	}
	if topK > count {
		topK = count
	}

	results, err := col.Query(ctx, text, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	snippets := make([]model.RetrievedSnippet, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, model.RetrievedSnippet{
			ID:       r.ID,
			Snippet:  truncate(r.Content, snippetLength),
			FullText: r.Content,
			Metadata: model.SnippetMetadata{
				Source:      r.Metadata["source"],
				URL:         r.Metadata["url"],
				PublishedAt: r.Metadata["published_at"],
				Title:       r.Metadata["title"],
			},
		})
	}

	return snippets, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
