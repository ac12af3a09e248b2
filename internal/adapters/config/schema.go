package config

import (
	"github.com/kballard/go-shellquote"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest represents the structure of the kiln.yaml project manifest.
type Manifest struct {
	Name      string                 `yaml:"name"`
	Kind      string                 `yaml:"kind"`
	Language  string                 `yaml:"language"`
	Standard  string                 `yaml:"standard"`
	Toolchain string                 `yaml:"toolchain"`
	Sources   string                 `yaml:"sources"`
	Include   []string               `yaml:"include"`
	PCH       string                 `yaml:"pch"`
	ImportLib bool                   `yaml:"import_lib"`
	Defines   []string               `yaml:"defines"`
	LibDirs   []string               `yaml:"lib_dirs"`
	Libs      []string               `yaml:"libs"`
	Relink    []string               `yaml:"relink"`
	CFlags    Args                   `yaml:"cflags"`
	LDFlags   Args                   `yaml:"ldflags"`
	Profiles  map[string]*ProfileDTO `yaml:"profiles"`
}

// ProfileDTO overrides the settings of a profile. A nil field keeps the inherited value.
type ProfileDTO struct {
	Inherits         string   `yaml:"inherits"`
	Opt              *int     `yaml:"opt"`
	OptSize          *bool    `yaml:"opt_size"`
	OptSpeed         *bool    `yaml:"opt_speed"`
	LTO              *bool    `yaml:"lto"`
	Strict           *bool    `yaml:"strict"`
	Warnings         *string  `yaml:"warnings"`
	WarningsAsErrors *bool    `yaml:"werror"`
	Debug            *bool    `yaml:"debug"`
	Runtime          *string  `yaml:"runtime"`
	Threads          *bool    `yaml:"threads"`
	ASLR             *bool    `yaml:"aslr"`
	NoRTTI           *bool    `yaml:"no_rtti"`
	NoExceptions     *bool    `yaml:"no_exceptions"`
	Defines          []string `yaml:"defines"`
	CFlags           Args     `yaml:"cflags"`
	LDFlags          Args     `yaml:"ldflags"`
}

// Args is an argument list written either as a YAML sequence or as one shell-quoted string.
type Args []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Args) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		words, err := shellquote.Split(value.Value)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidArgs, err.Error()), "value", value.Value)
		}
		*a = words
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*a = list
	return nil
}
