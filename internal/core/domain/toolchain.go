package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ToolchainID names one compiler front-end within a toolchain family.
type ToolchainID string

const (
	// ToolchainGCC is the GNU compiler collection.
	ToolchainGCC ToolchainID = "gcc"
	// ToolchainClang is clang with the GNU-style driver.
	ToolchainClang ToolchainID = "clang"
	// ToolchainZig is `zig cc` / `zig c++`.
	ToolchainZig ToolchainID = "zig"
	// ToolchainMSVC is cl.exe / link.exe / lib.exe.
	ToolchainMSVC ToolchainID = "msvc"
	// ToolchainClangCL is clang-cl with the MSVC-style driver.
	ToolchainClangCL ToolchainID = "clang-cl"
)

// Family is a group of front-ends sharing a command-line dialect.
type Family int

const (
	// FamilyGNU uses `-flag` style arguments.
	FamilyGNU Family = iota
	// FamilyMSVC uses `/flag` style arguments.
	FamilyMSVC
)

// String returns the family name.
func (f Family) String() string {
	if f == FamilyMSVC {
		return "msvc"
	}
	return "gnu"
}

// KnownToolchains lists every supported toolchain identifier.
var KnownToolchains = []ToolchainID{ToolchainGCC, ToolchainClang, ToolchainZig, ToolchainMSVC, ToolchainClangCL}

// ParseToolchainID validates a toolchain name.
func ParseToolchainID(s string) (ToolchainID, error) {
	id := ToolchainID(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case "cl", "cl.exe":
		return ToolchainMSVC, nil
	case "zig-cc":
		return ToolchainZig, nil
	}
	if !slices.Contains(KnownToolchains, id) {
		return "", zerr.With(zerr.Wrap(ErrUnknownToolchain, "unsupported toolchain"), "toolchain", s)
	}
	return id, nil
}

// Toolchain identifies the compiler front-end and the operating system being targeted.
// TargetOS uses GOOS spelling ("linux", "darwin", "windows", ...).
type Toolchain struct {
	ID       ToolchainID
	TargetOS string
}

// Family returns the command-line dialect of the toolchain.
func (t Toolchain) Family() Family {
	if t.IsMSVC() {
		return FamilyMSVC
	}
	return FamilyGNU
}

// IsMSVC reports whether the toolchain speaks the MSVC dialect.
func (t Toolchain) IsMSVC() bool {
	return t.ID == ToolchainMSVC || t.ID == ToolchainClangCL
}

// IsClang reports whether the front-end is clang based.
func (t Toolchain) IsClang() bool {
	return t.ID == ToolchainClang || t.ID == ToolchainClangCL || t.ID == ToolchainZig
}

// IsPOSIX reports whether the target is a POSIX system.
func (t Toolchain) IsPOSIX() bool {
	return t.TargetOS != "windows"
}

// IsLinux reports whether the target is Linux.
func (t Toolchain) IsLinux() bool {
	return t.TargetOS == "linux"
}

// IsApple reports whether the target is macOS.
func (t Toolchain) IsApple() bool {
	return t.TargetOS == "darwin" || t.TargetOS == "ios"
}

// ObjectExt returns the object file extension, including the dot.
func (t Toolchain) ObjectExt() string {
	if t.IsMSVC() {
		return ".obj"
	}
	return ".o"
}

// PCHExt returns the extension of the precompiled header artifact.
func (t Toolchain) PCHExt() string {
	if t.ID == ToolchainGCC {
		return ".gch"
	}
	return ".pch"
}

// String returns the toolchain identifier.
func (t Toolchain) String() string {
	return string(t.ID)
}
