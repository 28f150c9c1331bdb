package push

import (
	"testing"

	"firebase.google.com/go/v4/messaging"
)

func TestBuildFirebaseMessage(t *testing.T) {
	msg := Message{
		Title:        "Driver is Very Close!",
		Body:         "Kofi is arriving in about 1 minute. Get ready!",
		ImageURL:     "https://img.example/a.png",
		Data:         map[string]string{"type": "driver_very_near"},
		HighPriority: true,
		Android:      AndroidOptions{ChannelID: "food_delivery_channel", Sound: "default", NotificationPriority: "PRIORITY_HIGH"},
		Apple:        AppleOptions{Sound: "default", Badge: Badge(1), ContentAvailable: true},
	}

	m := buildFirebaseMessage("tok", msg)

	if m.Token != "tok" {
		t.Errorf("token = %q", m.Token)
	}
	if m.Android.Priority != "high" {
		t.Errorf("android priority = %q", m.Android.Priority)
	}
	if m.Android.Notification.Priority != messaging.PriorityHigh {
		t.Errorf("android notification priority = %v", m.Android.Notification.Priority)
	}
	if !m.APNS.Payload.Aps.ContentAvailable || *m.APNS.Payload.Aps.Badge != 1 {
		t.Errorf("aps = %+v", m.APNS.Payload.Aps)
	}
	if m.APNS.FCMOptions == nil || m.APNS.FCMOptions.ImageURL != msg.ImageURL {
		t.Errorf("apns fcm options = %+v", m.APNS.FCMOptions)
	}
}
