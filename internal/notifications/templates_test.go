package notifications

import (
	"math"
	"strings"
	"testing"

	"fooddash/internal/geo"
)

func TestOrderStatusTemplate(t *testing.T) {
	tests := []struct {
		status OrderStatus
		eta    string
		title  string
		body   string
	}{
		{StatusConfirmed, "", "✅ Order Confirmed", "Your order from Mama Put has been confirmed."},
		{StatusPreparing, "", "👨‍🍳 Preparing Your Food", "Mama Put is preparing your order."},
		{StatusReadyForPickup, "", "✨ Order Ready", "Your order from Mama Put is ready for pickup!"},
		{StatusOutForDelivery, "", "🛵 On the Way", "Your order from Mama Put is on the way!"},
		{StatusOutForDelivery, "15 mins", "🛵 On the Way", "Your order from Mama Put is on the way! ETA: 15 mins"},
		{StatusNearby, "", "📍 Driver Nearby", "Your driver is less than 1 km away!"},
		{StatusDelivered, "", "🎉 Delivered!", "Your order from Mama Put has been delivered. Enjoy your meal!"},
		{StatusCancelled, "", "❌ Order Cancelled", "Your order from Mama Put has been cancelled."},
		{"refunded", "", "Order Update", "Your order from Mama Put status: refunded"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+tt.eta, func(t *testing.T) {
			got := OrderStatusTemplate(tt.status, "Mama Put", tt.eta)
			if got.Title != tt.title || got.Body != tt.body {
				t.Errorf("got %q / %q, want %q / %q", got.Title, got.Body, tt.title, tt.body)
			}
			if got.Type != "order_status" {
				t.Errorf("type = %q", got.Type)
			}
		})
	}
}

func TestETAIgnoredOutsideOutForDelivery(t *testing.T) {
	got := OrderStatusTemplate(StatusPreparing, "Mama Put", "10 mins")
	if strings.Contains(got.Body, "ETA") {
		t.Errorf("unexpected ETA in %q", got.Body)
	}
}

func TestKnownStatuses(t *testing.T) {
	for _, s := range []OrderStatus{StatusConfirmed, StatusPreparing, StatusReadyForPickup, StatusOutForDelivery, StatusNearby, StatusDelivered, StatusCancelled} {
		if !s.Known() {
			t.Errorf("%s should be known", s)
		}
	}
	if OrderStatus("lost").Known() {
		t.Error("lost should not be known")
	}
}

func TestClassifyDistanceBoundaries(t *testing.T) {
	tests := []struct {
		d    float64
		want Tier
	}{
		{0, TierVeryClose},
		{0.49, TierVeryClose},
		{0.5, TierNearby},
		{1.49, TierNearby},
		{1.5, TierEnRoute},
		{12, TierEnRoute},
	}
	for _, tt := range tests {
		if got := ClassifyDistance(tt.d); got != tt.want {
			t.Errorf("ClassifyDistance(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestEstimateETA(t *testing.T) {
	for _, d := range []float64{0, 0.1, 0.3, 0.5, 0.51, 1, 2.2, 7.9} {
		want := int(math.Ceil(d / 0.5))
		if got := EstimateETA(d); got != want {
			t.Errorf("EstimateETA(%v) = %d, want %d", d, got, want)
		}
	}
	if EstimateETA(0.3) != 1 || EstimateETA(2.2) != 5 {
		t.Error("unexpected rounding")
	}
}

func TestSuppliedValuesWin(t *testing.T) {
	driver := geo.Point{Lat: 6.5244, Lng: 3.3792}
	customer := geo.Point{Lat: 6.6018, Lng: 3.3515}

	zero := 0.0
	if got := ResolveDistance(&zero, driver, customer); got != 0 {
		t.Errorf("supplied zero distance should win, got %v", got)
	}
	if got := ResolveDistance(nil, driver, customer); got != geo.Distance(driver, customer) {
		t.Errorf("fallback distance = %v", got)
	}

	eta := 9
	if got := ResolveETA(&eta, 0.1); got != 9 {
		t.Errorf("supplied eta should win, got %d", got)
	}
	if got := ResolveETA(nil, 1.2); got != 3 {
		t.Errorf("estimated eta = %d, want 3", got)
	}
}

func TestProximityTemplate(t *testing.T) {
	tests := []struct {
		tier  Tier
		d     float64
		eta   int
		typ   string
		title string
		body  string
	}{
		{TierVeryClose, 0.3, 1, "driver_very_near", "📍 Driver is Very Close!", "Tunde is arriving in about 1 minute. Get ready!"},
		{TierVeryClose, 0.45, 2, "driver_very_near", "📍 Driver is Very Close!", "Tunde is arriving in about 2 minutes. Get ready!"},
		{TierNearby, 1.234, 3, "driver_nearby", "🛵 Driver Nearby", "Tunde is 1.2 km away (3 min)"},
		{TierEnRoute, 4.06, 9, "driver_location_update", "📱 Driver Location Update", "Tunde is on the way - 4.1 km away (ETA: 9 min)"},
	}
	for _, tt := range tests {
		got := ProximityTemplate(tt.tier, "Tunde", tt.d, tt.eta)
		if got.Type != tt.typ || got.Title != tt.title || got.Body != tt.body {
			t.Errorf("got %+v, want %s / %q / %q", got, tt.typ, tt.title, tt.body)
		}
	}
}
