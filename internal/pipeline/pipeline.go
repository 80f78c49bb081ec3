// Package pipeline sequences one intelligence-report run:
// collect → ingest → retrieve → analyze → persist.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stockintel/internal/collector"
	"stockintel/internal/model"
)

const defaultTopK = 5

const queryTemplate = "Latest financial performance, strategic moves, risks, and market outlook for %s"

type Collector interface {
	Collect(ctx context.Context, company, ticker, from, to string) collector.Bundle
}

type Retriever interface {
	Ingest(ctx context.Context, ticker string, articles []model.Article) error
	Query(ctx context.Context, ticker, text string, topK int) ([]model.RetrievedSnippet, error)
}

type Generator interface {
	Analyze(ctx context.Context, company string, prices *model.PriceSummary, docs []model.RetrievedSnippet) model.AnalystReport
}

// ReportStore persists finished reports. Optional.
type ReportStore interface {
	SaveReport(ticker, company string, report model.AnalystReport) error
}

type RunRequest struct {
	Company string
	Ticker  string
	From    string
	To      string
	TopK    int
}

type Pipeline struct {
	collector Collector
	index     Retriever
	analyst   Generator
	store     ReportStore
	outputDir string
}

// New wires the pipeline stages. index may be nil when no embedding
// credential is configured; the run then degrades to an evidence-free
// report instead of failing.
func New(c Collector, ix Retriever, a Generator, outputDir string) *Pipeline {
	return &Pipeline{
		collector: c,
		index:     ix,
		analyst:   a,
		outputDir: outputDir,
	}
}

// WithStore attaches an optional report store.
func (p *Pipeline) WithStore(store ReportStore) *Pipeline {
	p.store = store
	return p
}

// Run executes the full pipeline for one company/ticker. It always
// terminates with a schema-valid report, even when every upstream source
// fails; stage failures degrade, they do not abort.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) model.AnalystReport {
	if req.TopK <= 0 {
		req.TopK = defaultTopK
	}

	slog.Info("starting pipeline", "company", req.Company, "ticker", req.Ticker, "from", req.From, "to", req.To)

	slog.Info("phase 1: data collection")
	bundle := p.collector.Collect(ctx, req.Company, req.Ticker, req.From, req.To)
	if len(bundle.Articles) == 0 {
		slog.Warn("no articles found, proceeding with caution")
	}

	var retrieved []model.RetrievedSnippet
	if p.index != nil {
		slog.Info("phase 2: ingestion", "articles", len(bundle.Articles))
		if err := p.index.Ingest(ctx, req.Ticker, bundle.Articles); err != nil {
			slog.Error("ingestion failed", "ticker", req.Ticker, "error", err)
		}

		slog.Info("phase 3: retrieval", "top_k", req.TopK)
		docs, err := p.index.Query(ctx, req.Ticker, fmt.Sprintf(queryTemplate, req.Company), req.TopK)
		if err != nil {
			slog.Error("retrieval failed", "ticker", req.Ticker, "error", err)
		} else {
			retrieved = docs
		}
	} else {
		slog.Warn("index unavailable, skipping ingestion and retrieval")
	}

	slog.Info("phase 4: analysis", "documents", len(retrieved))
	report := p.analyst.Analyze(ctx, req.Company, bundle.Prices, retrieved)

	p.persist(req, report)

	return report
}

// persist writes the run artifact and, when configured, the database row.
// Persistence failures are logged, never fatal: the report still reaches
// the caller.
func (p *Pipeline) persist(req RunRequest, report model.AnalystReport) {
	if p.outputDir != "" {
		if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
			slog.Error("error creating output directory", "dir", p.outputDir, "error", err)
		} else {
			name := fmt.Sprintf("report_%s_%s.json", req.Ticker, time.Now().Format("20060102_150405"))
			path := filepath.Join(p.outputDir, name)

			data, err := json.MarshalIndent(report, "", "  ")
			if err == nil {
				err = os.WriteFile(path, data, 0o644)
			}
			if err != nil {
				slog.Error("error saving report artifact", "path", path, "error", err)
			} else {
				slog.Info("report saved", "path", path)
			}
		}
	}

	if p.store != nil {
		if err := p.store.SaveReport(req.Ticker, req.Company, report); err != nil {
			slog.Error("error saving report to database", "ticker", req.Ticker, "error", err)
		}
	}
}
