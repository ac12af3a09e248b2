package ports

import "go.trai.ch/kiln/internal/core/domain"

// SettingsStore persists the settings snapshot of the last successful build.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SettingsStore interface {
	// Get retrieves the snapshot recorded under outputDir.
	// Returns nil, nil if not found.
	Get(outputDir string) (*domain.SettingsSnapshot, error)

	// Put records the snapshot under outputDir.
	Put(outputDir string, snap domain.SettingsSnapshot) error
}
