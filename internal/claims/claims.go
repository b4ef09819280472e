// Package claims derives human-readable claim strings from raw metadata
// values. All derivers are pure functions: the same value and level always
// produce the same string, and missing data yields a fallback rather than an
// error.
package claims

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/veilcam/veilcam/internal/capsule"
)

// FallbackRegion is shown when a location claim is requested at a granularity
// the capture data cannot support.
const FallbackRegion = "In authorized region"

// TimeClaim formats the capture timestamp (epoch milliseconds, UTC) at the
// requested granularity.
func TimeClaim(tsMillis int64, level capsule.TimeLevel) string {
	t := time.UnixMilli(tsMillis).UTC()

	switch level {
	case capsule.TimeLevelHour:
		return t.Format("January 2, 2006, 3 PM")
	case capsule.TimeLevelDay:
		return t.Format("January 2, 2006")
	case capsule.TimeLevelWeek:
		// most recent prior Sunday (or the day itself if already Sunday)
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		return "Week of " + sunday.Format("January 2, 2006")
	case capsule.TimeLevelMonth:
		return "In " + t.Format("January 2006")
	case capsule.TimeLevelYear:
		return "In " + t.Format("2006")
	default:
		return t.Format("January 2, 2006, 3:04:05 PM MST")
	}
}

// LocationClaim formats the location at the requested granularity, falling
// back to a generic phrase whenever the needed component is absent.
func LocationClaim(loc *capsule.Location, level capsule.LocationLevel) string {
	if loc == nil {
		return FallbackRegion
	}

	switch level {
	case capsule.LocationLevelCity:
		if loc.City != "" {
			return loc.City
		}
	case capsule.LocationLevelCountry:
		if loc.Country != "" {
			return loc.Country
		}
	case capsule.LocationLevelContinent:
		if loc.Continent != "" {
			return loc.Continent
		}
	default:
		return fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
	}
	return FallbackRegion
}

// DeviceClaim derives a device claim from the raw device descriptor.
//
//   - devicetype: a generic "Phone"
//   - platform: the OS name recognized in the descriptor
//   - imei: a masked pseudo-IMEI derived from a hash of the descriptor
//     (first 8 hex chars + mask); the real identifier is never exposed
func DeviceClaim(deviceInfo string, level capsule.DeviceLevel) string {
	switch level {
	case capsule.DeviceLevelPlatform:
		return devicePlatform(deviceInfo)
	case capsule.DeviceLevelIMEI:
		sum := sha256.Sum256([]byte(deviceInfo))
		return hex.EncodeToString(sum[:4]) + "-****-****"
	default:
		return "Phone"
	}
}

func devicePlatform(deviceInfo string) string {
	d := strings.ToLower(deviceInfo)
	switch {
	case strings.Contains(d, "ios") || strings.Contains(d, "iphone"):
		return "iOS"
	case strings.Contains(d, "android"):
		return "Android"
	default:
		return "Unknown OS"
	}
}
