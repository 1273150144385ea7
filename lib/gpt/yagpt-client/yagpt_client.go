package yagptclient

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	GenerateByPromtAndText(ctx context.Context, promt, text string) (generatedText string, err error)
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
	timeout   time.Duration
	attempts  int
}

// NewClient attempts - сколько раз повторять запрос при ошибке или пустом ответе
func NewClient(token, catalog string, timeout time.Duration, attempts int) Provider {
	if attempts < 1 {
		attempts = 1
	}
	return impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(token),
		catalogID: catalog,
		timeout:   timeout,
		attempts:  attempts,
	}
}

func (i impl) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: 0.3,
			MaxTokens:   2000,
		},
		Messages: []yandexgptclient.YandexGPTMessage{
			{
				Role: yandexgptclient.YandexGPTMessageRoleSystem,
				Text: promt,
			},
			{
				Role: yandexgptclient.YandexGPTMessageRoleUser,
				Text: text,
			},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= i.attempts; attempt++ {
		result, err := i.send(ctx, request)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		log.
			WithField("attempt", attempt).
			WithError(err).
			Warn("запрос к YandexGPT не удался")
	}
	return "", lastErr
}

func (i impl) send(ctx context.Context, request yandexgptclient.YandexGPTRequest) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}
	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		return "", errors.Wrap(err, "Ошибка при отправке запроса на генерацию в API YandexGPT")
	}
	if len(response.Result.Alternatives) == 0 {
		return "", errors.New("пустой ответ от YandexGPT")
	}
	result := strings.TrimSpace(response.Result.Alternatives[0].Message.Text)
	if result == "" {
		return "", errors.New("пустой ответ от YandexGPT")
	}
	return result, nil
}
