package notifications

import (
	"fmt"
	"math"

	"fooddash/internal/geo"
)

// AverageSpeedKmPerMinute is the assumed courier speed (30 km/h) used when the caller does
// not supply an ETA. It is a business guess, not a measured value.
const AverageSpeedKmPerMinute = 0.5

const (
	VeryCloseThresholdKm = 0.5
	NearbyThresholdKm    = 1.5
)

type Tier int

const (
	TierVeryClose Tier = iota
	TierNearby
	TierEnRoute
)

func (t Tier) String() string {
	switch t {
	case TierVeryClose:
		return "very_close"
	case TierNearby:
		return "nearby"
	default:
		return "en_route"
	}
}

// ResolveDistance prefers the caller supplied distance and falls back to Haversine.
func ResolveDistance(supplied *float64, driver, customer geo.Point) float64 {
	if supplied != nil {
		return *supplied
	}
	return geo.Distance(driver, customer)
}

// EstimateETA returns whole minutes, rounded up.
func EstimateETA(distanceKm float64) int {
	return int(math.Ceil(distanceKm / AverageSpeedKmPerMinute))
}

func ResolveETA(supplied *int, distanceKm float64) int {
	if supplied != nil {
		return *supplied
	}
	return EstimateETA(distanceKm)
}

func ClassifyDistance(distanceKm float64) Tier {
	switch {
	case distanceKm < VeryCloseThresholdKm:
		return TierVeryClose
	case distanceKm < NearbyThresholdKm:
		return TierNearby
	default:
		return TierEnRoute
	}
}

func ProximityTemplate(tier Tier, driverName string, distanceKm float64, eta int) Template {
	switch tier {
	case TierVeryClose:
		return Template{
			Title: "📍 Driver is Very Close!",
			Body:  fmt.Sprintf("%s is arriving in about %d %s. Get ready!", driverName, eta, minutes(eta)),
			Type:  "driver_very_near",
		}
	case TierNearby:
		return Template{
			Title: "🛵 Driver Nearby",
			Body:  fmt.Sprintf("%s is %.1f km away (%d min)", driverName, distanceKm, eta),
			Type:  "driver_nearby",
		}
	default:
		return Template{
			Title: "📱 Driver Location Update",
			Body:  fmt.Sprintf("%s is on the way - %.1f km away (ETA: %d min)", driverName, distanceKm, eta),
			Type:  "driver_location_update",
		}
	}
}

func minutes(n int) string {
	if n > 1 {
		return "minutes"
	}
	return "minute"
}
