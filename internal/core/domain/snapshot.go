package domain

import "time"

// SettingsSnapshot records the effective configuration of the last successful build.
type SettingsSnapshot struct {
	Project     string    `json:"project,omitzero"`
	Profile     string    `json:"profile,omitzero"`
	Toolchain   string    `json:"toolchain,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
