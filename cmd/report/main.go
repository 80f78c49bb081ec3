package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"stockintel/db"
	"stockintel/internal/analyst"
	"stockintel/internal/collector"
	"stockintel/internal/index"
	"stockintel/internal/pipeline"
	"stockintel/internal/repository"
	"stockintel/pkg/llm"
	"stockintel/pkg/news"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	var (
		company  string
		ticker   string
		from     string
		to       string
		topK     int
		output   string
		indexDir string
	)

	root := &cobra.Command{
		Use:   "report",
		Short: "Generate a company intelligence report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker = strings.ToUpper(strings.TrimSpace(ticker))

			llmClient, err := buildLLMClient()
			if err != nil {
				return err
			}

			var structured collector.StructuredNewsSource
			if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
				structured = news.NewFinnhubClient(key)
			}
			var search collector.ArticleSearchSource
			if key := os.Getenv("NEWSAPI_API_KEY"); key != "" {
				search = news.NewNewsAPIClient(key)
			}
			var web collector.WebSearchSource
			if key := os.Getenv("SERPER_API_KEY"); key != "" {
				web = news.NewSerperClient(key)
			}
			if structured == nil && search == nil && web == nil {
				slog.Warn("no news source API keys configured, report will have no fresh data")
			}

			var retriever pipeline.Retriever
			if os.Getenv("OPENAI_API_KEY") != "" {
				embedder := index.Default()
				if os.Getenv("REDIS_URL") != "" {
					if err := db.ConnectRedis(); err != nil {
						slog.Warn("error connecting to Redis, embedding cache disabled", "error", err)
					} else {
						defer db.CloseRedis()
						embedder.WithCache(db.NewEmbeddingCache(db.Redis))
					}
				}

				ix, err := index.New(indexDir, embedder.Func())
				if err != nil {
					slog.Error("error opening vector index, retrieval disabled", "dir", indexDir, "error", err)
				} else {
					retriever = ix
				}
			} else {
				slog.Warn("OPENAI_API_KEY not set, retrieval disabled")
			}

			p := pipeline.New(
				collector.New(structured, search, web),
				retriever,
				analyst.New(llmClient),
				output,
			)

			if os.Getenv("DATABASE_URL") != "" {
				if err := db.Connect(); err != nil {
					slog.Warn("error connecting to DB, reports will not be persisted", "error", err)
				} else {
					defer db.Close()
					p.WithStore(repository.NewReportRepository(db.DB))
				}
			}

			report := p.Run(cmd.Context(), pipeline.RunRequest{
				Company: company,
				Ticker:  ticker,
				From:    from,
				To:      to,
				TopK:    topK,
			})

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	now := time.Now().UTC()

	root.Flags().StringVar(&company, "company", "", "company name, e.g. \"Nvidia\"")
	root.Flags().StringVar(&ticker, "ticker", "", "stock ticker, e.g. NVDA")
	root.Flags().StringVar(&from, "from", now.AddDate(0, 0, -30).Format("2006-01-02"), "start date (YYYY-MM-DD)")
	root.Flags().StringVar(&to, "to", now.Format("2006-01-02"), "end date (YYYY-MM-DD)")
	root.Flags().IntVar(&topK, "top-k", 5, "number of documents to retrieve for analysis")
	root.Flags().StringVar(&output, "output", "output", "directory for report artifacts")
	root.Flags().StringVar(&indexDir, "index-dir", ".stockintel/index", "directory for the persistent vector index")
	root.MarkFlagRequired("company")
	root.MarkFlagRequired("ticker")

	if err := root.Execute(); err != nil {
		log.Fatalf("error running report: %v", err)
	}
}

// buildLLMClient selects the generation backend. The LLM credential is the
// one mandatory configuration: without it no valid report can ever be
// produced, so this fails fast instead of degrading.
func buildLLMClient() (llm.Client, error) {
	if os.Getenv("LLM_PROVIDER") == "anthropic" {
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		return llm.NewAnthropicClient(key), nil
	}

	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
	}
	return llm.NewGroqClient(key), nil
}
