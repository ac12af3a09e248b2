package ports

import "go.trai.ch/kiln/internal/core/domain"

// Hasher computes the settings fingerprint of a build descriptor.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// Fingerprint hashes every descriptor field that changes the produced objects.
	// Source and header lists are excluded; timestamps track those.
	Fingerprint(desc *domain.BuildDescriptor) string
}
