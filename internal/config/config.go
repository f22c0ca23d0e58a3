// Package config provides environment-based configuration for the gatekeeper.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the detection pipeline.
const (
	DefaultServerURL     = "http://localhost:3000"
	DefaultPort          = "8080"
	DefaultCameraIndex   = 0
	DefaultCooldown      = 5 * time.Second
	DefaultFrameInterval = 1 * time.Second
)

// ServerURL returns the registry base URL from SERVER_URL, or the default.
func ServerURL() string {
	if url := os.Getenv("SERVER_URL"); url != "" {
		return url
	}
	return DefaultServerURL
}

// Port returns the control surface port from PORT, or the default.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// LogLevel returns the log level from LOG_LEVEL, or "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// CameraIndex returns the capture device index from CAMERA_INDEX.
func CameraIndex() int {
	if v := os.Getenv("CAMERA_INDEX"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
			return idx
		}
	}
	return DefaultCameraIndex
}

// CooldownWindow returns the duplicate-suppression window from
// COOLDOWN_SECONDS, or the 5 second default.
func CooldownWindow() time.Duration {
	if v := os.Getenv("COOLDOWN_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return DefaultCooldown
}

// FrameInterval returns the delay between capture cycles from
// FRAME_INTERVAL_MS, or the 1 second default.
func FrameInterval() time.Duration {
	if v := os.Getenv("FRAME_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return DefaultFrameInterval
}
