// Package analyst turns retrieved context into a validated intelligence
// report. Model output is untrusted input: it must parse as JSON and pass
// the report contract, otherwise the fixed fallback report is returned.
package analyst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stockintel/internal/model"
	"stockintel/pkg/llm"

	"github.com/go-playground/validator/v10"
)

const (
	maxOutputTokens     = 1024
	samplingTemperature = 0.1
)

type Analyst struct {
	llm      llm.Client
	validate *validator.Validate
}

func New(client llm.Client) *Analyst {
	return &Analyst{
		llm:      client,
		validate: validator.New(),
	}
}

// Analyze generates the report for one company. It never fails: any error
// in the model call, parsing, or schema validation collapses into the
// fallback report.
func (a *Analyst) Analyze(ctx context.Context, company string, prices *model.PriceSummary, docs []model.RetrievedSnippet) model.AnalystReport {
	user := buildUserMessage(company, prices, docs)

	slog.Info("requesting analysis", "company", company, "documents", len(docs), "model", a.llm.Name())

	content, err := a.llm.Complete(ctx, systemPrompt, user, llm.Options{
		MaxTokens:   maxOutputTokens,
		Temperature: samplingTemperature,
		JSONMode:    true,
	})
	if err != nil {
		slog.Error("analysis generation failed", "company", company, "error", err)
		return model.FallbackReport()
	}

	report, err := a.parseReport(content)
	if err != nil {
		slog.Error("analysis output rejected", "company", company, "error", err)
		return model.FallbackReport()
	}

	return *report
}

// parseReport parses and validates raw model output against the report
// contract. A parse failure and a schema violation are the same terminal
// condition.
func (a *Analyst) parseReport(content string) (*model.AnalystReport, error) {
	content = cleanJSONResponse(content)

	var report model.AnalystReport
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, fmt.Errorf("invalid JSON from LLM: %w", err)
	}

	// Required array fields must be present, though they may be empty.
	// A nil slice means the key was absent from the output.
	if report.KeyDrivers == nil {
		return nil, errors.New("missing required field key_drivers")
	}
	if report.Risks == nil {
		return nil, errors.New("missing required field risks")
	}
	if report.Evidence == nil {
		return nil, errors.New("missing required field evidence")
	}

	// Confidence is required too, but a float64 zero value cannot
	// distinguish an absent key from a literal 0.0.
	var fields struct {
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields.Confidence == nil {
		return nil, errors.New("missing required field confidence")
	}

	if err := a.validate.Struct(report); err != nil {
		return nil, fmt.Errorf("report failed schema validation: %w", err)
	}

	return &report, nil
}

// cleanJSONResponse strips markdown fences and surrounding prose that some
// models wrap around their JSON output.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
