package analyst

import (
	"encoding/json"
	"fmt"
	"strings"

	"stockintel/internal/model"
)

const systemPrompt = `You are an expert Financial Analyst. Your task is to analyze the provided company news and stock price data to produce a structured intelligence report.

You will be given:
1. Company Name
2. Stock Price Summary
3. Relevant Document Snippets (with IDs and URLs)

INSTRUCTIONS:
1. Analyze the sentiment and key drivers affecting the stock.
2. Identify major risks.
3. MOST IMPORTANT: Provide evidence for your claims. Every piece of evidence MUST include the exact article_id and url from the provided documents.
4. Output strict JSON exactly matching the schema.
5. If there is insufficient data to form a conclusion, set confidence to low (0.0 - 0.3) and state that in the summary.
6. Do NOT hallucinate article IDs or facts not present in the documents.

JSON SCHEMA:
{
  "summary": "Executive summary (3-5 sentences).",
  "sentiment": "positive" | "neutral" | "negative",
  "key_drivers": ["driver 1", "driver 2"],
  "risks": ["risk 1", "risk 2"],
  "evidence": [
    {
      "article_id": "exact_id_from_doc",
      "quote": "short relevant quote",
      "url": "exact_url_from_doc"
    }
  ],
  "confidence": 0.0 to 1.0
}`

// buildUserMessage serializes the grounding context. Each document's id and
// url are surfaced explicitly so the model can copy them verbatim into
// evidence entries.
func buildUserMessage(company string, prices *model.PriceSummary, docs []model.RetrievedSnippet) string {
	priceJSON := "{}"
	if prices != nil {
		if b, err := json.MarshalIndent(prices, "", "  "); err == nil {
			priceJSON = string(b)
		}
	}

	var docsText strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&docsText, "---\nID: %s\nURL: %s\nCONTENT: %s...\n", d.ID, d.Metadata.URL, d.Snippet)
	}

	return fmt.Sprintf(`COMPANY: %s

PRICE DATA:
%s

DOCUMENTS:
%s

Analyze and generate the JSON report.`, company, priceJSON, docsText.String())
}
