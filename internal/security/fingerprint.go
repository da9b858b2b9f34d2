package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ClientSignals carries the browser-reported signals used to derive a device
// fingerprint. All fields are optional; missing ones fall back to a fixed
// placeholder so the hash stays deterministic.
type ClientSignals struct {
	CanvasHash     string `json:"canvas_hash"`
	TimezoneOffset string `json:"timezone_offset"`
	Platform       string `json:"platform"`
	ScreenMetrics  string `json:"screen_metrics"`
	UserAgent      string `json:"user_agent"`
	Language       string `json:"language"`
}

const missingSignal = "unavailable"

// Fingerprint derives a stable per-browser identifier from low-entropy
// environment signals. Same browser profile yields the same value across
// visits in the common case. This is a heuristic bucket key for throttling
// and audit correlation, not an identity guarantee: it is neither unique
// nor unspoofable.
func Fingerprint(s ClientSignals) string {
	parts := []string{
		orDefault(s.CanvasHash),
		orDefault(s.TimezoneOffset),
		orDefault(s.Platform),
		orDefault(s.ScreenMetrics),
		orDefault(s.UserAgent),
		orDefault(s.Language),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func orDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return missingSignal
	}
	return v
}
