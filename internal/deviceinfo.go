package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"howett.net/plist"
)

// DeviceInfo is the device and app provenance recovered from the backup.
// The extractor threads it through to the report untouched; every field
// degrades to "Unknown" when the backup lacks it.
type DeviceInfo struct {
	DeviceID     string `json:"device_id"`
	DeviceModel  string `json:"device_model"`
	DeviceName   string `json:"device_name"`
	Manufacturer string `json:"manufacturer"`
	Platform     string `json:"platform"`
	OSVersion    string `json:"os_version"`
	OSBuild      string `json:"os_build"`
	ScreenWidth  string `json:"screen_width"`
	ScreenHeight string `json:"screen_height"`
	AppVersion   string `json:"app_version"`
	AppBuild     string `json:"app_build"`
	AppBundle    string `json:"app_bundle"`
	Timezone     string `json:"timezone"`
	Locale       string `json:"locale"`
	UserID       string `json:"user_id"`
}

// UnknownDeviceInfo returns a DeviceInfo with every field set to
// "Unknown".
func UnknownDeviceInfo() DeviceInfo {
	return DeviceInfo{
		DeviceID:     "Unknown",
		DeviceModel:  "Unknown",
		DeviceName:   "Unknown",
		Manufacturer: "Unknown",
		Platform:     "Unknown",
		OSVersion:    "Unknown",
		OSBuild:      "Unknown",
		ScreenWidth:  "Unknown",
		ScreenHeight: "Unknown",
		AppVersion:   "Unknown",
		AppBuild:     "Unknown",
		AppBundle:    "Unknown",
		Timezone:     "Unknown",
		Locale:       "Unknown",
		UserID:       "Unknown",
	}
}

// segment analytics event batch, as written by the app's telemetry queue.
type segmentBatch struct {
	Batch []segmentEvent `json:"batch"`
}

type segmentEvent struct {
	UserID  string                 `json:"userId"`
	Context *segmentContext        `json:"context"`
	Traits  map[string]interface{} `json:"traits"`
}

type segmentContext struct {
	DeviceID string `json:"device_id"`
	Timezone string `json:"timezone"`
	Locale   string `json:"locale"`
	Device   *struct {
		Model        string `json:"model"`
		Name         string `json:"name"`
		Manufacturer string `json:"manufacturer"`
	} `json:"device"`
	OS *struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"os"`
	Screen *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"screen"`
	App *struct {
		Version   string `json:"version"`
		Build     string `json:"build"`
		Namespace string `json:"namespace"`
	} `json:"app"`
}

// CollectDeviceInfo recovers device provenance from the backup directory
// layout surrounding the conversations dir: segment analytics temp files
// first (most complete), then the app's preferences plist. Collection
// never fails; missing sources just leave fields at "Unknown".
func CollectDeviceInfo(conversationsDir string) DeviceInfo {
	info := UnknownDeviceInfo()
	base := filepath.Dir(conversationsDir)

	if err := fillFromSegment(&info, filepath.Join(base, "segment", "oai")); err != nil {
		LogDebug("No segment analytics data: %v", err)
	}

	if info.DeviceID == "Unknown" {
		if err := fillFromPlist(&info, filepath.Join(base, "Preferences", "com.openai.chat.plist")); err != nil {
			LogDebug("No preferences plist: %v", err)
		}
	}
	return info
}

// fillFromSegment reads the newest segment events batch and copies the
// first event that carries a context.
func fillFromSegment(info *DeviceInfo, segmentDir string) error {
	files, err := filepath.Glob(filepath.Join(segmentDir, "*-segment-events.temp"))
	if err != nil || len(files) == 0 {
		return os.ErrNotExist
	}
	sort.Strings(files)

	data, err := os.ReadFile(files[len(files)-1])
	if err != nil {
		return err
	}

	var batch segmentBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return err
	}

	for _, event := range batch.Batch {
		if event.Context == nil {
			continue
		}
		ctx := event.Context
		if ctx.Device != nil {
			setKnown(&info.DeviceModel, ctx.Device.Model)
			setKnown(&info.DeviceName, ctx.Device.Name)
			setKnown(&info.Manufacturer, ctx.Device.Manufacturer)
		}
		if ctx.OS != nil {
			setKnown(&info.Platform, ctx.OS.Name)
			setKnown(&info.OSVersion, ctx.OS.Version)
		}
		if ctx.Screen != nil {
			info.ScreenWidth = strconv.Itoa(ctx.Screen.Width)
			info.ScreenHeight = strconv.Itoa(ctx.Screen.Height)
		}
		if ctx.App != nil {
			setKnown(&info.AppVersion, ctx.App.Version)
			setKnown(&info.AppBuild, ctx.App.Build)
			setKnown(&info.AppBundle, ctx.App.Namespace)
		}
		setKnown(&info.DeviceID, ctx.DeviceID)
		setKnown(&info.Timezone, ctx.Timezone)
		setKnown(&info.Locale, ctx.Locale)
		setKnown(&info.UserID, event.UserID)
		if build, ok := event.Traits["apple_os_version"].(string); ok {
			setKnown(&info.OSBuild, build)
		}
		break
	}
	return nil
}

// fillFromPlist recovers the backed-up device id from the app preferences.
func fillFromPlist(info *DeviceInfo, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var prefs struct {
		DeviceIDBackup string `plist:"deviceIDBackup"`
	}
	if _, err := plist.Unmarshal(data, &prefs); err != nil {
		return err
	}
	setKnown(&info.DeviceID, prefs.DeviceIDBackup)
	info.AppBundle = "com.openai.chat"
	info.Platform = "iOS"
	return nil
}

func setKnown(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
