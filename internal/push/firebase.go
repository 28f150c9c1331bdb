package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseSender delivers through the Firebase Admin SDK, authenticating with a
// service account instead of a static server key.
type FirebaseSender struct {
	client *messaging.Client
}

func NewFirebaseSender(ctx context.Context, projectID, credentialsFile string) (*FirebaseSender, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	return &FirebaseSender{client: client}, nil
}

func (s *FirebaseSender) Send(ctx context.Context, token string, msg Message) error {
	if token == "" {
		return ErrEmptyToken
	}
	if _, err := s.client.Send(ctx, buildFirebaseMessage(token, msg)); err != nil {
		return fmt.Errorf("firebase send: %w", err)
	}
	return nil
}

func buildFirebaseMessage(token string, msg Message) *messaging.Message {
	androidNotification := &messaging.AndroidNotification{
		Sound:     msg.Android.Sound,
		ChannelID: msg.Android.ChannelID,
		Color:     msg.Android.Color,
		ImageURL:  msg.ImageURL,
	}
	if msg.Android.NotificationPriority == "PRIORITY_HIGH" {
		androidNotification.Priority = messaging.PriorityHigh
	}

	m := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title:    msg.Title,
			Body:     msg.Body,
			ImageURL: msg.ImageURL,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Notification: androidNotification,
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:            msg.Apple.Sound,
					Badge:            msg.Apple.Badge,
					ContentAvailable: msg.Apple.ContentAvailable,
				},
			},
		},
	}
	if msg.HighPriority {
		m.Android.Priority = "high"
	}
	if msg.ImageURL != "" {
		m.APNS.FCMOptions = &messaging.APNSFCMOptions{ImageURL: msg.ImageURL}
	}
	return m
}
