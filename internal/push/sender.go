package push

import (
	"context"
	"errors"
	"fmt"
)

var ErrEmptyToken = errors.New("push: empty device token")

// Sender delivers one message to one device token.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) error
}

// ProviderError is returned when the push provider answers with a non-success status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: http=%d body=%s", e.Provider, e.StatusCode, e.Body)
}
