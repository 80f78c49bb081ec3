package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

const defaultGroqModel = "llama-3.3-70b-versatile"

// GroqClient talks to Groq's OpenAI-compatible chat completions API.
type GroqClient struct {
	client *openai.Client
	model  string
}

func NewGroqClient(apiKey string, opts ...option.RequestOption) *GroqClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(groqBaseURL),
	}, opts...)
	client := openai.NewClient(opts...)
	return &GroqClient{
		client: &client,
		model:  defaultGroqModel,
	}
}

func (c *GroqClient) Name() string {
	return "groq/" + c.model
}

func (c *GroqClient) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("groq API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from groq")
	}

	return resp.Choices[0].Message.Content, nil
}
