package openaiclient

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
)

type Provider interface {
	GenerateByPromtAndText(ctx context.Context, promt, text string) (generatedText string, err error)
}

type impl struct {
	client      *openai.Client
	model       string
	temperature float64
}

func NewClient(apiKey, baseURL, model string, temperature float64) Provider {
	return impl{
		client:      NewOpenAI(apiKey, baseURL),
		model:       model,
		temperature: temperature,
	}
}

// NewOpenAI общий конструктор клиента, используется также для распознавания и синтеза речи
func NewOpenAI(apiKey, baseURL string) *openai.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &client
}

func (i impl) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: i.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(promt),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(i.temperature),
	}
	resp, err := i.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "Ошибка при отправке запроса в API OpenAI")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("пустой ответ от OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
