package push

import "context"

// Router sends Expo tokens through Expo and everything else through the FCM sender.
// A nil Expo sender routes every token to FCM.
type Router struct {
	FCM  Sender
	Expo Sender
}

func (r *Router) Send(ctx context.Context, token string, msg Message) error {
	if r.Expo != nil && IsExpoToken(token) {
		return r.Expo.Send(ctx, token, msg)
	}
	return r.FCM.Send(ctx, token, msg)
}
