package push

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/9ssi7/exponent"
)

// ExpoClient is the subset of the exponent client the sender needs.
type ExpoClient interface {
	PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error)
}

type ExpoSender struct {
	client ExpoClient
}

func NewExpoSender(c ExpoClient) *ExpoSender {
	return &ExpoSender{client: c}
}

// IsExpoToken reports whether token is an Expo push token rather than a raw FCM one.
func IsExpoToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")
}

func (s *ExpoSender) Send(ctx context.Context, token string, msg Message) error {
	if token == "" {
		return ErrEmptyToken
	}

	//wrap the string token in exponent.Token
	t := exponent.Token(token)
	m := &exponent.Message{
		To:    []*exponent.Token{&t},
		Title: msg.Title,
		Body:  msg.Body,
		Data:  msg.Data,
	}

	tickets, err := s.client.PublishSingle(ctx, m)
	if err != nil {
		return fmt.Errorf("expo publish: %w", err)
	}

	// Expo answers 200 and reports rejected tokens per ticket.
	for _, t := range tickets {
		if t == nil || t.IsOk() {
			continue
		}
		body := t.Message
		if code := t.Details["error"]; code != "" {
			body = code + ": " + body
		}
		return &ProviderError{Provider: "expo", StatusCode: http.StatusOK, Body: body}
	}
	return nil
}
