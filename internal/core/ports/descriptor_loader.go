package ports

import "go.trai.ch/kiln/internal/core/domain"

// DescriptorLoader resolves the project manifest into a build descriptor.
//
//go:generate mockgen -source=descriptor_loader.go -destination=mocks/mock_descriptor_loader.go -package=mocks
type DescriptorLoader interface {
	// Load finds the manifest from cwd upwards and resolves it for the requested profile.
	// SettingsChanged is left false; it is computed by the caller.
	Load(cwd string, opts domain.LoadOptions) (*domain.BuildDescriptor, error)
}
