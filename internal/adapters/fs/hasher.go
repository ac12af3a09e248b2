package fs

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes the settings fingerprint recorded after each successful build.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes every descriptor field that changes how objects are produced.
// Source and header lists are left out: their timestamps already drive rebuilds.
func (h *Hasher) Fingerprint(desc *domain.BuildDescriptor) string {
	hasher := xxhash.New()

	h.hashToolchain(desc, hasher)
	h.hashSettings(desc.Settings, hasher)

	h.hashList(hasher, desc.Defines)
	h.hashList(hasher, desc.IncludeDirs)
	h.hashList(hasher, desc.LibDirs)
	h.hashList(hasher, desc.LinkArchives)
	h.hashList(hasher, desc.ExtraCompilerArgs)
	h.hashList(hasher, desc.ExtraLinkerArgs)
	h.hashList(hasher, []string{desc.PrecompiledHeader})

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func (h *Hasher) hashToolchain(desc *domain.BuildDescriptor, hasher *xxhash.Digest) {
	h.hashList(hasher, []string{
		desc.Toolchain.String(),
		desc.Toolchain.TargetOS,
		desc.Language.Kind.String(),
		desc.Language.Standard.String(),
		desc.Kind.String(),
		strconv.FormatBool(desc.GenerateImportLib),
	})
}

func (h *Hasher) hashSettings(s domain.Settings, hasher *xxhash.Digest) {
	h.hashList(hasher, []string{
		strconv.Itoa(s.OptLevel),
		strconv.FormatBool(s.OptSize),
		strconv.FormatBool(s.OptSpeed),
		strconv.FormatBool(s.LTO),
		strconv.FormatBool(s.ISOStrict),
		s.Warnings.String(),
		strconv.FormatBool(s.WarningsAsErrors),
		strconv.FormatBool(s.DebugInfo),
		s.Runtime.String(),
		strconv.FormatBool(s.Threads),
		strconv.FormatBool(s.ASLR),
		strconv.FormatBool(s.NoRTTI),
		strconv.FormatBool(s.NoExceptions),
	})
}

// hashList writes each entry followed by a separator, then a section separator.
func (h *Hasher) hashList(hasher *xxhash.Digest, entries []string) {
	for _, e := range entries {
		_, _ = hasher.WriteString(e)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
