package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultFCMBaseURL = "https://fcm.googleapis.com"

// FCMHTTPSender talks to the FCM HTTP v1 API directly with a bearer key.
type FCMHTTPSender struct {
	ProjectID  string
	ServerKey  string
	BaseURL    string
	httpClient *http.Client
}

func NewFCMHTTPSender(projectID, serverKey string) *FCMHTTPSender {
	return &FCMHTTPSender{
		ProjectID:  projectID,
		ServerKey:  serverKey,
		BaseURL:    DefaultFCMBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *FCMHTTPSender) sendURL() string {
	return fmt.Sprintf("%s/v1/projects/%s/messages:send", strings.TrimRight(s.BaseURL, "/"), s.ProjectID)
}

type fcmEnvelope struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      fcmAndroid        `json:"android"`
	APNS         fcmAPNS           `json:"apns"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type fcmAndroid struct {
	Priority     string                 `json:"priority,omitempty"`
	Notification fcmAndroidNotification `json:"notification"`
}

type fcmAndroidNotification struct {
	Sound                string `json:"sound,omitempty"`
	ChannelID            string `json:"channel_id,omitempty"`
	Color                string `json:"color,omitempty"`
	Image                string `json:"image,omitempty"`
	NotificationPriority string `json:"notification_priority,omitempty"`
}

type fcmAPNS struct {
	Payload    fcmAPNSPayload  `json:"payload"`
	FCMOptions *fcmAPNSOptions `json:"fcm_options,omitempty"`
}

type fcmAPNSPayload struct {
	Aps fcmAps `json:"aps"`
}

type fcmAps struct {
	Sound            string `json:"sound,omitempty"`
	Badge            *int   `json:"badge,omitempty"`
	ContentAvailable int    `json:"content-available,omitempty"`
}

type fcmAPNSOptions struct {
	Image string `json:"image"`
}

func buildFCMMessage(token string, msg Message) fcmEnvelope {
	m := fcmMessage{
		Token: token,
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
			Image: msg.ImageURL,
		},
		Data: msg.Data,
		Android: fcmAndroid{
			Notification: fcmAndroidNotification{
				Sound:                msg.Android.Sound,
				ChannelID:            msg.Android.ChannelID,
				Color:                msg.Android.Color,
				Image:                msg.ImageURL,
				NotificationPriority: msg.Android.NotificationPriority,
			},
		},
		APNS: fcmAPNS{
			Payload: fcmAPNSPayload{
				Aps: fcmAps{
					Sound: msg.Apple.Sound,
					Badge: msg.Apple.Badge,
				},
			},
		},
	}
	if msg.HighPriority {
		m.Android.Priority = "high"
	}
	if msg.Apple.ContentAvailable {
		m.APNS.Payload.Aps.ContentAvailable = 1
	}
	if msg.ImageURL != "" {
		m.APNS.FCMOptions = &fcmAPNSOptions{Image: msg.ImageURL}
	}
	return fcmEnvelope{Message: m}
}

func (s *FCMHTTPSender) Send(ctx context.Context, token string, msg Message) error {
	if token == "" {
		return ErrEmptyToken
	}

	body, err := json.Marshal(buildFCMMessage(token, msg))
	if err != nil {
		return fmt.Errorf("fcm encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fcm request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.ServerKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &ProviderError{Provider: "fcm", StatusCode: resp.StatusCode, Body: string(raw)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
