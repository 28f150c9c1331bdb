package push

import (
	"context"
	"testing"
)

type recordingSender struct {
	tokens []string
}

func (r *recordingSender) Send(ctx context.Context, token string, msg Message) error {
	r.tokens = append(r.tokens, token)
	return nil
}

func TestRouterSplitsByTokenShape(t *testing.T) {
	fcm := &recordingSender{}
	expo := &recordingSender{}
	r := &Router{FCM: fcm, Expo: expo}

	tokens := []string{"ExponentPushToken[abc]", "fcm-raw-token", "ExpoPushToken[def]"}
	for _, tok := range tokens {
		if err := r.Send(context.Background(), tok, Message{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(fcm.tokens) != 1 || fcm.tokens[0] != "fcm-raw-token" {
		t.Errorf("fcm got %v", fcm.tokens)
	}
	if len(expo.tokens) != 2 {
		t.Errorf("expo got %v", expo.tokens)
	}
}

func TestRouterWithoutExpoUsesFCM(t *testing.T) {
	fcm := &recordingSender{}
	r := &Router{FCM: fcm}

	r.Send(context.Background(), "ExponentPushToken[abc]", Message{})
	if len(fcm.tokens) != 1 {
		t.Errorf("expected token routed to fcm, got %v", fcm.tokens)
	}
}
