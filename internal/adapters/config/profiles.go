package config

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// ProfileDebug is the default profile.
	ProfileDebug = "debug"
	// ProfileRelease is the optimised profile.
	ProfileRelease = "release"
)

// profile is a fully resolved profile.
type profile struct {
	settings domain.Settings
	defines  []string
	cflags   []string
	ldflags  []string
}

func builtinProfile(name string) (profile, bool) {
	switch name {
	case ProfileDebug:
		return profile{
			settings: domain.Settings{
				OptLevel:  0,
				Warnings:  domain.WarningsBasic,
				DebugInfo: true,
				Runtime:   domain.RuntimeDynamicDebug,
				Threads:   true,
				ASLR:      true,
			},
			defines: []string{"DEBUG"},
		}, true
	case ProfileRelease:
		return profile{
			settings: domain.Settings{
				OptLevel: 2,
				Warnings: domain.WarningsBasic,
				Runtime:  domain.RuntimeDynamicRelease,
				Threads:  true,
				ASLR:     true,
			},
			defines: []string{"NDEBUG"},
		}, true
	}
	return profile{}, false
}

// resolveProfile merges the manifest overrides of name onto its base profile.
// Custom profiles inherit from debug unless they name another base.
func resolveProfile(name string, overrides map[string]*ProfileDTO) (profile, error) {
	dto := overrides[name]

	base, ok := builtinProfile(name)
	if !ok {
		if dto == nil {
			known := []string{ProfileDebug, ProfileRelease}
			for n := range overrides {
				if !slices.Contains(known, n) {
					known = append(known, n)
				}
			}
			slices.Sort(known)
			return profile{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnknownProfile, "profile is not declared"),
				"profile", name), "known", strings.Join(known, ", "))
		}

		parent := dto.Inherits
		if parent == "" {
			parent = ProfileDebug
		}
		if base, ok = builtinProfile(parent); !ok {
			return profile{}, zerr.With(zerr.Wrap(domain.ErrUnknownProfile, "profiles can only inherit from debug or release"),
				"inherits", parent)
		}
		// Declared overrides of the base profile apply to the child too.
		if parentDTO := overrides[parent]; parentDTO != nil {
			if err := apply(&base, parent, parentDTO); err != nil {
				return profile{}, err
			}
		}
	}

	if dto != nil {
		if err := apply(&base, name, dto); err != nil {
			return profile{}, err
		}
	}
	return base, nil
}

func apply(p *profile, name string, dto *ProfileDTO) error {
	s := &p.settings

	if dto.Opt != nil {
		if *dto.Opt < 0 || *dto.Opt > 3 {
			return invalid(name, "opt", fmt.Sprint(*dto.Opt))
		}
		s.OptLevel = *dto.Opt
	}
	setBool(&s.OptSize, dto.OptSize)
	setBool(&s.OptSpeed, dto.OptSpeed)
	setBool(&s.LTO, dto.LTO)
	setBool(&s.ISOStrict, dto.Strict)
	setBool(&s.WarningsAsErrors, dto.WarningsAsErrors)
	setBool(&s.DebugInfo, dto.Debug)
	setBool(&s.Threads, dto.Threads)
	setBool(&s.ASLR, dto.ASLR)
	setBool(&s.NoRTTI, dto.NoRTTI)
	setBool(&s.NoExceptions, dto.NoExceptions)

	if dto.Warnings != nil {
		w, ok := parseWarnings(*dto.Warnings)
		if !ok {
			return invalid(name, "warnings", *dto.Warnings)
		}
		s.Warnings = w
	}
	if dto.Runtime != nil {
		r, ok := parseRuntime(*dto.Runtime)
		if !ok {
			return invalid(name, "runtime", *dto.Runtime)
		}
		s.Runtime = r
	}

	p.defines = append(p.defines, dto.Defines...)
	p.cflags = append(p.cflags, dto.CFlags...)
	p.ldflags = append(p.ldflags, dto.LDFlags...)
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func invalid(profile, field, value string) error {
	err := zerr.With(zerr.Wrap(domain.ErrInvalidProfile, "unsupported value"), "profile", profile)
	return zerr.With(zerr.With(err, "field", field), "value", value)
}

func parseWarnings(s string) (domain.WarningLevel, bool) {
	switch strings.ToLower(s) {
	case "none", "off":
		return domain.WarningsNone, true
	case "basic", "default":
		return domain.WarningsBasic, true
	case "high", "all":
		return domain.WarningsHigh, true
	}
	return 0, false
}

func parseRuntime(s string) (domain.RuntimeLinkage, bool) {
	for _, r := range []domain.RuntimeLinkage{
		domain.RuntimeDynamicRelease,
		domain.RuntimeDynamicDebug,
		domain.RuntimeStaticRelease,
		domain.RuntimeStaticDebug,
	} {
		if strings.EqualFold(s, r.String()) {
			return r, true
		}
	}
	return 0, false
}
