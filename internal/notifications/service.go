package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fooddash/internal/geo"
	"fooddash/internal/push"
	"fooddash/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoDevices = errors.New("no devices found")

const (
	androidChannelID = "food_delivery_channel"
	defaultSound     = "default"
	promoColor       = "#FF6B35"
	promotionType    = "promotion"
	campaignLogType  = "promotional"
)

type DeviceStore interface {
	ActiveTokensByUserID(ctx context.Context, userID string) ([]string, error)
	ActiveDevices(ctx context.Context, userIDs []string) ([]store.Device, error)
}

type ProfileStore interface {
	FilterBySegments(ctx context.Context, userIDs, segments []string) ([]string, error)
}

type CampaignStore interface {
	InsertCampaignLog(ctx context.Context, l *store.CampaignLog) error
}

type OrderEvent struct {
	OrderID        string
	UserID         string
	Status         OrderStatus
	RestaurantName string
	EstimatedTime  string
}

type DriverLocation struct {
	OrderID     string
	UserID      string
	DriverName  string
	DriverPhone string
	Driver      geo.Point
	Customer    geo.Point
	DistanceKm  *float64
	ETAMinutes  *int
}

type Promotion struct {
	Title          string
	Body           string
	ImageURL       string
	ActionURL      string
	RestaurantID   string
	TargetUsers    []string
	TargetSegments []string
}

// Outcome summarises one dispatch. Only the fields relevant to the variant are set.
type Outcome struct {
	Sent       int
	Total      int
	DistanceKm float64
	ETAMinutes int
	Type       string
	CampaignID uuid.UUID
}

type Service struct {
	Devices    DeviceStore
	Profiles   ProfileStore
	Campaigns  CampaignStore
	Dispatcher *Dispatcher
	Logger     *zap.SugaredLogger
}

func (s *Service) NotifyOrderStatus(ctx context.Context, ev OrderEvent) (Outcome, error) {
	tokens, err := s.Devices.ActiveTokensByUserID(ctx, ev.UserID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load devices for user %s: %w", ev.UserID, err)
	}
	tokens = uniqueTokens(tokens)
	if len(tokens) == 0 {
		return Outcome{}, ErrNoDevices
	}

	tpl := OrderStatusTemplate(ev.Status, ev.RestaurantName, ev.EstimatedTime)
	msg := push.Message{
		Title: tpl.Title,
		Body:  tpl.Body,
		Data: map[string]string{
			"type":     tpl.Type,
			"order_id": ev.OrderID,
			"status":   string(ev.Status),
		},
		HighPriority: true,
		Android: push.AndroidOptions{
			ChannelID: androidChannelID,
			Sound:     defaultSound,
		},
		Apple: push.AppleOptions{
			Sound: defaultSound,
			Badge: push.Badge(1),
		},
	}

	results := s.Dispatcher.Deliver(ctx, tokens, msg)
	s.logFailures(results, "order_id", ev.OrderID)

	out := Outcome{Sent: CountSent(results), Total: len(tokens), Type: tpl.Type}
	s.Logger.Infow("order notification sent", "order_id", ev.OrderID, "status", ev.Status, "sent", out.Sent, "total", out.Total)
	return out, nil
}

func (s *Service) NotifyDriverLocation(ctx context.Context, loc DriverLocation) (Outcome, error) {
	tokens, err := s.Devices.ActiveTokensByUserID(ctx, loc.UserID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load devices for user %s: %w", loc.UserID, err)
	}
	tokens = uniqueTokens(tokens)
	if len(tokens) == 0 {
		return Outcome{}, ErrNoDevices
	}

	distance := ResolveDistance(loc.DistanceKm, loc.Driver, loc.Customer)
	eta := ResolveETA(loc.ETAMinutes, distance)
	tpl := ProximityTemplate(ClassifyDistance(distance), loc.DriverName, distance, eta)

	msg := push.Message{
		Title: tpl.Title,
		Body:  tpl.Body,
		Data: map[string]string{
			"type":         tpl.Type,
			"order_id":     loc.OrderID,
			"driver_name":  loc.DriverName,
			"driver_phone": loc.DriverPhone,
			"distance":     strconv.FormatFloat(distance, 'f', -1, 64),
			"eta":          strconv.Itoa(eta),
		},
		HighPriority: true,
		Android: push.AndroidOptions{
			ChannelID:            androidChannelID,
			Sound:                defaultSound,
			NotificationPriority: "PRIORITY_HIGH",
		},
		Apple: push.AppleOptions{
			Sound:            defaultSound,
			Badge:            push.Badge(1),
			ContentAvailable: true,
		},
	}

	results := s.Dispatcher.Deliver(ctx, tokens, msg)
	s.logFailures(results, "order_id", loc.OrderID)

	return Outcome{
		Sent:       CountSent(results),
		Total:      len(tokens),
		DistanceKm: distance,
		ETAMinutes: eta,
		Type:       tpl.Type,
	}, nil
}

func (s *Service) SendPromotion(ctx context.Context, p Promotion) (Outcome, error) {
	devices, err := s.Devices.ActiveDevices(ctx, p.TargetUsers)
	if err != nil {
		return Outcome{}, fmt.Errorf("load promotion devices: %w", err)
	}

	if len(p.TargetSegments) > 0 && len(devices) > 0 {
		devices, err = s.filterBySegments(ctx, devices, p.TargetSegments)
		if err != nil {
			return Outcome{}, err
		}
	}

	raw := make([]string, 0, len(devices))
	for _, d := range devices {
		raw = append(raw, d.FCMToken)
	}
	tokens := uniqueTokens(raw)
	if len(tokens) == 0 {
		return Outcome{}, ErrNoDevices
	}

	msg := push.Message{
		Title:    p.Title,
		Body:     p.Body,
		ImageURL: p.ImageURL,
		Data: map[string]string{
			"type":          promotionType,
			"action_url":    p.ActionURL,
			"restaurant_id": p.RestaurantID,
		},
		HighPriority: true,
		Android: push.AndroidOptions{
			ChannelID: androidChannelID,
			Sound:     defaultSound,
			Color:     promoColor,
		},
		Apple: push.AppleOptions{
			Sound: defaultSound,
			Badge: push.Badge(1),
		},
	}

	sent := s.Dispatcher.DeliverBatched(ctx, tokens, msg, s.Dispatcher.BatchSize)

	out := Outcome{Sent: sent, Total: len(tokens), Type: promotionType}

	if s.Campaigns != nil {
		entry := &store.CampaignLog{
			Type:        campaignLogType,
			Title:       p.Title,
			TargetCount: len(tokens),
			SentCount:   sent,
			Payload: map[string]any{
				"title":           p.Title,
				"body":            p.Body,
				"image_url":       p.ImageURL,
				"action_url":      p.ActionURL,
				"restaurant_id":   p.RestaurantID,
				"target_users":    p.TargetUsers,
				"target_segments": p.TargetSegments,
			},
		}
		if err := s.Campaigns.InsertCampaignLog(ctx, entry); err != nil {
			s.Logger.Errorw("failed to write campaign log", "title", p.Title, "error", err.Error())
		} else {
			out.CampaignID = entry.ID
		}
	}

	s.Logger.Infow("promotion sent", "title", p.Title, "sent", sent, "total", len(tokens))
	return out, nil
}

func (s *Service) filterBySegments(ctx context.Context, devices []store.Device, segments []string) ([]store.Device, error) {
	if s.Profiles == nil {
		return devices, nil
	}

	seen := make(map[string]struct{}, len(devices))
	userIDs := make([]string, 0, len(devices))
	for _, d := range devices {
		if _, ok := seen[d.UserID]; ok {
			continue
		}
		seen[d.UserID] = struct{}{}
		userIDs = append(userIDs, d.UserID)
	}

	kept, err := s.Profiles.FilterBySegments(ctx, userIDs, segments)
	if err != nil {
		return nil, fmt.Errorf("filter promotion segments: %w", err)
	}

	allowed := make(map[string]struct{}, len(kept))
	for _, id := range kept {
		allowed[id] = struct{}{}
	}

	filtered := devices[:0:0]
	for _, d := range devices {
		if _, ok := allowed[d.UserID]; ok {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (s *Service) logFailures(results []Result, keysAndValues ...any) {
	for _, r := range results {
		if r.Success {
			continue
		}
		s.Logger.Warnw("push delivery failed", append(keysAndValues, "error", r.Error)...)
	}
}
