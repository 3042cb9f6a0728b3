package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateSessionID generates a unique customization session ID
func GenerateSessionID() string {
	return "sess_" + uuid.New().String()
}

// GenerateRenderID generates a unique ID for a rendered artifact
func GenerateRenderID() string {
	return "render_" + uuid.New().String()
}

// GenerateRenderProcessID generates a process ID for background render tasks
func GenerateRenderProcessID() string {
	return "proc_render_" + uuid.New().String()
}

// GenerateChangeID generates an ID for a customization change record
func GenerateChangeID() string {
	return "chg_" + uuid.New().String()
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// Contains checks if a string slice contains a specific string
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// GetStringOrDefault returns the value if not empty, otherwise returns the default
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// RollingChecksum computes a simple non-cryptographic rolling hash over the
// given content, used to fingerprint rendered artifacts.
func RollingChecksum(content string) string {
	var hash uint32
	for _, r := range content {
		hash = hash*31 + uint32(r)
	}
	return fmt.Sprintf("%08x", hash)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
