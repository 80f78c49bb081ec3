package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/openai/openai-go/option"
)

func TestGroqComplete(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  defaultGroqModel,
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": `{"summary":"ok"}`,
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewGroqClient("test-key", option.WithBaseURL(srv.URL))

	out, err := client.Complete(context.Background(), "system prompt", "user prompt", Options{
		MaxTokens:   1024,
		Temperature: 0.1,
		JSONMode:    true,
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, `{"summary":"ok"}`, out)

	assert.Equal(t, defaultGroqModel, gotReq["model"])
	assert.Equal(t, 1024.0, gotReq["max_tokens"])
	rf, ok := gotReq["response_format"].(map[string]interface{})
	assert.Equal(t, true, ok)
	assert.Equal(t, "json_object", rf["type"])
}

func TestGroqComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-2",
			"object":  "chat.completion",
			"choices": []interface{}{},
		})
	}))
	defer srv.Close()

	client := NewGroqClient("test-key", option.WithBaseURL(srv.URL))

	_, err := client.Complete(context.Background(), "s", "u", Options{})

	assert.NotEqual(t, nil, err)
}
