// Package toolchain maps build settings onto the command lines of one compiler family.
//
// Translation is pure: no method touches the filesystem or fails. Flags that do not apply
// to the language (RTTI and exception switches for C) are simply not emitted.
package toolchain

import (
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
)

// Translator builds argument vectors for one toolchain family.
type Translator interface {
	// Toolchain returns the toolchain the translator was built for.
	Toolchain() domain.Toolchain

	// Compiler returns the program (and leading arguments) that compiles lang.
	Compiler(lang domain.Language) domain.Command
	// Linker returns the program that links objects of lang into an application or shared library.
	Linker(lang domain.Language) domain.Command
	// Archiver returns the program that packs objects into a static library.
	Archiver(s domain.Settings) domain.Command

	// StandardFlag returns the language standard switch. When the toolchain cannot honour the
	// requested revision the flag is degraded and warning explains how.
	StandardFlag(lang domain.Language) (flag, warning string)
	// OptimizationArgs returns the optimisation switches of s.
	OptimizationArgs(s domain.Settings) []string
	// WarningArgs returns the diagnostic switches of s.
	WarningArgs(s domain.Settings) []string

	// CompileArgs returns the arguments compiling one unit.
	CompileArgs(desc *domain.BuildDescriptor, unit domain.CompileUnit, pch domain.PCHState) []string
	// PCHCreateArgs returns the arguments generating the precompiled header artifact.
	PCHCreateArgs(desc *domain.BuildDescriptor, pch domain.PCHState) []string
	// PCHObjects returns objects emitted by the PCH compile that must be linked.
	PCHObjects(desc *domain.BuildDescriptor, pch domain.PCHState) []string
	// LinkArgs returns the arguments linking objects into desc.OutputFile.
	LinkArgs(desc *domain.BuildDescriptor, objects []string) []string
	// ArchiveArgs returns the arguments archiving objects into desc.OutputFile.
	ArchiveArgs(desc *domain.BuildDescriptor, objects []string) []string
}

// New returns the translator for tc's family.
func New(tc domain.Toolchain) Translator {
	if tc.IsMSVC() {
		return &msvcTranslator{tc: tc}
	}
	return &gnuTranslator{tc: tc}
}

// CompileCommand returns the full command compiling unit.
func CompileCommand(t Translator, desc *domain.BuildDescriptor, unit domain.CompileUnit, pch domain.PCHState) domain.Command {
	return t.Compiler(desc.Language).With(t.CompileArgs(desc, unit, pch)...)
}

// PCHCommand returns the full command generating the precompiled header.
func PCHCommand(t Translator, desc *domain.BuildDescriptor, pch domain.PCHState) domain.Command {
	return t.Compiler(desc.Language).With(t.PCHCreateArgs(desc, pch)...)
}

// FinalCommand returns the link command, or the archive command for static libraries.
func FinalCommand(t Translator, desc *domain.BuildDescriptor, objects []string) (domain.Command, domain.Stage) {
	if desc.Kind == domain.KindStaticLibrary {
		return t.Archiver(desc.Settings).With(t.ArchiveArgs(desc, objects)...), domain.StageArchive
	}
	return t.Linker(desc.Language).With(t.LinkArgs(desc, objects)...), domain.StageLink
}

// args accumulates an argument vector.
type args []string

func (a *args) add(v ...string) {
	*a = append(*a, v...)
}

func (a *args) addIf(cond bool, v ...string) {
	if cond {
		*a = append(*a, v...)
	}
}

func (a *args) prefixed(prefix string, values []string) {
	for _, v := range values {
		*a = append(*a, prefix+v)
	}
}

func (a args) list() []string {
	return slices.Clip([]string(a))
}
