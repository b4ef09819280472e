package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/veilcam/veilcam/internal/capsule"
)

func (a *App) captureCmd(ctx context.Context) {
	if !a.requireUnlocked() {
		return
	}

	path, err := GetSimpleText(a.reader, "Path to the photo file", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	media, err := os.ReadFile(path)
	if err != nil {
		log.Printf("cannot read %s: %v", path, err)
		return
	}
	sum := sha256.Sum256(media)

	meta := &capsule.Metadata{
		Timestamp: time.Now().UnixMilli(),
		PhotoHash: hex.EncodeToString(sum[:]),
		MediaKind: capsule.MediaKindPhoto,
	}

	if meta.Location, err = a.promptLocation(); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if meta.DeviceInfo, err = GetSimpleText(a.reader, "Device description (e.g. 'iPhone 15 Pro, iOS 17.1')", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}

	settings, err := a.promptSettings()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	c, err := a.capture.Capture(ctx, media, meta, settings)
	if err != nil {
		log.Printf("capture failed: %s", err.Error())
		return
	}
	log.Printf("Capsule created: %s (%d public claims)", c.ID, len(c.PublicClaims))
}

func (a *App) promptLocation() (*capsule.Location, error) {
	has, err := GetYesNo(a.reader, "Attach location data?", os.Stdout)
	if err != nil || !has {
		return nil, err
	}

	loc := &capsule.Location{}
	if raw, err := GetSimpleText(a.reader, "Latitude", os.Stdout); err == nil {
		loc.Latitude, _ = strconv.ParseFloat(raw, 64)
	}
	if raw, err := GetSimpleText(a.reader, "Longitude", os.Stdout); err == nil {
		loc.Longitude, _ = strconv.ParseFloat(raw, 64)
	}
	if loc.City, err = GetSimpleText(a.reader, "City", os.Stdout); err != nil {
		return nil, err
	}
	if loc.Country, err = GetSimpleText(a.reader, "Country", os.Stdout); err != nil {
		return nil, err
	}
	if loc.Continent, err = GetSimpleText(a.reader, "Continent", os.Stdout); err != nil {
		return nil, err
	}
	return loc, nil
}

func (a *App) promptSettings() (*capsule.Settings, error) {
	s := &capsule.Settings{}
	var err error

	if s.RevealTime, err = GetYesNo(a.reader, "Reveal capture time?", os.Stdout); err != nil {
		return nil, err
	}
	if s.RevealTime {
		level, err := GetSimpleText(a.reader, "Time granularity (exact/hour/day/week/month/year)", os.Stdout)
		if err != nil {
			return nil, err
		}
		s.TimeLevel = capsule.TimeLevel(level)
	}

	if s.RevealLocation, err = GetYesNo(a.reader, "Reveal location?", os.Stdout); err != nil {
		return nil, err
	}
	if s.RevealLocation {
		level, err := GetSimpleText(a.reader, "Location granularity (exact/city/country/continent)", os.Stdout)
		if err != nil {
			return nil, err
		}
		s.LocationLevel = capsule.LocationLevel(level)
	}

	if s.RevealDevice, err = GetYesNo(a.reader, "Reveal device?", os.Stdout); err != nil {
		return nil, err
	}
	if s.RevealDevice {
		level, err := GetSimpleText(a.reader, "Device granularity (devicetype/platform/imei)", os.Stdout)
		if err != nil {
			return nil, err
		}
		s.DeviceLevel = capsule.DeviceLevel(level)
	}

	if s.ProveDeviceTrusted, err = GetYesNo(a.reader, "Include the device-trusted attestation?", os.Stdout); err != nil {
		return nil, err
	}
	if s.RevealImageHash, err = GetYesNo(a.reader, "Reveal image hash?", os.Stdout); err != nil {
		return nil, err
	}

	timeLocked, err := GetYesNo(a.reader, "Add a time-locked message?", os.Stdout)
	if err != nil {
		return nil, err
	}
	if timeLocked {
		raw, err := GetSimpleText(a.reader, "Unlock time (RFC3339, e.g. 2026-12-31T00:00:00Z)", os.Stdout)
		if err != nil {
			return nil, err
		}
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		payload, err := GetSimpleText(a.reader, "Locked message", os.Stdout)
		if err != nil {
			return nil, err
		}
		s.TimeLock = &capsule.TimeLock{Until: until, Payload: payload}
	}

	walletLocked, err := GetYesNo(a.reader, "Add a wallet-locked message?", os.Stdout)
	if err != nil {
		return nil, err
	}
	if walletLocked {
		addr, err := GetSimpleText(a.reader, "Allowed wallet address", os.Stdout)
		if err != nil {
			return nil, err
		}
		payload, err := GetSimpleText(a.reader, "Locked message", os.Stdout)
		if err != nil {
			return nil, err
		}
		s.ReceiverLock = &capsule.ReceiverLock{AllowedAddress: addr, Payload: payload}
	}

	return s, nil
}
