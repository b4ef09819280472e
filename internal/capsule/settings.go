package capsule

import "time"

// TimeLevel selects the granularity of a revealed time claim.
type TimeLevel string

const (
	TimeLevelExact TimeLevel = "exact"
	TimeLevelHour  TimeLevel = "hour"
	TimeLevelDay   TimeLevel = "day"
	TimeLevelWeek  TimeLevel = "week"
	TimeLevelMonth TimeLevel = "month"
	TimeLevelYear  TimeLevel = "year"
)

// LocationLevel selects the granularity of a revealed location claim.
type LocationLevel string

const (
	LocationLevelExact     LocationLevel = "exact"
	LocationLevelCity      LocationLevel = "city"
	LocationLevelCountry   LocationLevel = "country"
	LocationLevelContinent LocationLevel = "continent"
)

// DeviceLevel selects what a revealed device claim exposes.
type DeviceLevel string

const (
	DeviceLevelType     DeviceLevel = "devicetype"
	DeviceLevelPlatform DeviceLevel = "platform"
	DeviceLevelIMEI     DeviceLevel = "imei"
)

// TimeLock hides a payload until a wall-clock instant passes. The deadline is
// public; the payload is committed but never placed in public claims.
type TimeLock struct {
	Until   time.Time
	Payload string
}

// ReceiverLock hides a payload until the named wallet address connects.
// The address is public; matching is case-insensitive.
type ReceiverLock struct {
	AllowedAddress string
	Payload        string
}

// Settings are the disclosure toggles and levels chosen by the capsule owner.
// A disabled toggle means the corresponding claim key is absent from
// public_claims entirely; absence is the privacy signal.
type Settings struct {
	RevealTime bool
	TimeLevel  TimeLevel

	RevealLocation bool
	LocationLevel  LocationLevel

	RevealDevice bool
	DeviceLevel  DeviceLevel

	// ProveDeviceTrusted adds the machine-checked boolean claim
	// device_trusted without disclosing anything about the device itself.
	ProveDeviceTrusted bool

	RevealImageHash bool

	TimeLock     *TimeLock
	ReceiverLock *ReceiverLock
}

// FieldForTimeLevel maps a time disclosure level to its claim/vault field.
func FieldForTimeLevel(level TimeLevel) Field {
	switch level {
	case TimeLevelDay:
		return FieldDateDay
	case TimeLevelMonth:
		return FieldDateMonth
	case TimeLevelYear:
		return FieldDateYear
	default:
		// exact, hour and week all derive from the exact timestamp field
		return FieldDateExact
	}
}

// FieldForLocationLevel maps a location disclosure level to its field.
func FieldForLocationLevel(level LocationLevel) Field {
	switch level {
	case LocationLevelCity:
		return FieldLocationCity
	case LocationLevelCountry:
		return FieldLocationCountry
	case LocationLevelContinent:
		return FieldLocationContinent
	default:
		return FieldLocationExact
	}
}

// FieldForDeviceLevel maps a device disclosure level to its field.
func FieldForDeviceLevel(level DeviceLevel) Field {
	switch level {
	case DeviceLevelPlatform:
		return FieldDevicePlatform
	case DeviceLevelIMEI:
		return FieldDeviceInfo
	default:
		return FieldDeviceType
	}
}
