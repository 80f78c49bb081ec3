package index

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/philippgille/chromem-go"
)

// EmbedCache caches computed vectors keyed by content hash. Implementations
// must be safe to skip: a miss or an unavailable backend just means the
// vector is recomputed.
type EmbedCache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, vector []float32)
}

// Embedder maps text to fixed-length vectors through the embeddings API.
// Identical input yields identical vectors, so results are cacheable.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	cache  EmbedCache
}

func NewEmbedder(apiKey string, opts ...option.RequestOption) *Embedder {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &Embedder{
		client: &client,
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}
}

// WithCache attaches an optional vector cache.
func (e *Embedder) WithCache(cache EmbedCache) *Embedder {
	e.cache = cache
	return e
}

var (
	defaultOnce     sync.Once
	defaultEmbedder *Embedder
)

// Default returns the process-wide embedder, initialized lazily on first
// use and shared across all callers.
func Default() *Embedder {
	defaultOnce.Do(func() {
		defaultEmbedder = NewEmbedder(os.Getenv("OPENAI_API_KEY"))
	})
	return defaultEmbedder
}

// Embed returns one vector per input text, in input order. Cached vectors
// are reused; the remaining texts go out in a single batch request.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if e.cache != nil {
			if vec, ok := e.cache.Get(ctx, cacheKey(text)); ok {
				vectors[i] = vec
				continue
			}
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: missing},
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	if len(resp.Data) != len(missing) {
		return nil, fmt.Errorf("embeddings request: got %d vectors for %d texts", len(resp.Data), len(missing))
	}

	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}

		idx := missingIdx[d.Index]
		vectors[idx] = vec
		if e.cache != nil {
			e.cache.Set(ctx, cacheKey(missing[d.Index]), vec)
		}
	}

	return vectors, nil
}

// Func adapts the embedder to the vector store's per-document callback.
func (e *Embedder) Func() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) == 0 || vectors[0] == nil {
			return nil, errors.New("no embedding returned")
		}
		return vectors[0], nil
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("stockintel:embed:%x", sum[:8])
}
