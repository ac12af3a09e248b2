package toolchain

import (
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

// highWarnings is the fixed extended warning set of GNU-style drivers.
var highWarnings = []string{
	"-Wall",
	"-Wextra",
	"-Wpedantic",
	"-Wconversion",
	"-Wsign-conversion",
	"-Wshadow",
	"-Wformat=2",
	"-Wnull-dereference",
	"-Wdouble-promotion",
	"-Wimplicit-fallthrough",
}

// gnuTranslator speaks the dialect of gcc, clang and zig cc.
type gnuTranslator struct {
	tc domain.Toolchain
}

func (g *gnuTranslator) Toolchain() domain.Toolchain {
	return g.tc
}

func (g *gnuTranslator) Compiler(lang domain.Language) domain.Command {
	switch g.tc.ID {
	case domain.ToolchainZig:
		if lang.IsCXX() {
			return domain.Command{Program: "zig", Args: []string{"c++"}}
		}
		return domain.Command{Program: "zig", Args: []string{"cc"}}
	case domain.ToolchainClang:
		if lang.IsCXX() {
			return domain.Command{Program: "clang++"}
		}
		return domain.Command{Program: "clang"}
	default:
		if lang.IsCXX() {
			return domain.Command{Program: "g++"}
		}
		return domain.Command{Program: "gcc"}
	}
}

// Linker returns the compiler driver; it pulls in the right runtime for lang.
func (g *gnuTranslator) Linker(lang domain.Language) domain.Command {
	return g.Compiler(lang)
}

// Archiver returns ar, or the LTO-aware wrapper when objects carry bitcode.
func (g *gnuTranslator) Archiver(s domain.Settings) domain.Command {
	switch {
	case g.tc.ID == domain.ToolchainZig:
		return domain.Command{Program: "zig", Args: []string{"ar"}}
	case s.LTO && g.tc.ID == domain.ToolchainGCC:
		return domain.Command{Program: "gcc-ar"}
	case s.LTO && g.tc.IsClang():
		return domain.Command{Program: "llvm-ar"}
	default:
		return domain.Command{Program: "ar"}
	}
}

func (g *gnuTranslator) StandardFlag(lang domain.Language) (string, string) {
	return gnuStandard(lang), ""
}

func (g *gnuTranslator) OptimizationArgs(s domain.Settings) []string {
	var a args
	a.add("-O" + optLevel(s.OptLevel))
	a.addIf(s.OptSize, "-Os")
	a.addIf(s.OptSpeed, "-Ofast")
	a.addIf(s.LTO, "-flto")
	return a.list()
}

func (g *gnuTranslator) WarningArgs(s domain.Settings) []string {
	var a args
	switch s.Warnings {
	case domain.WarningsNone:
		a.add("-w")
	case domain.WarningsBasic:
		a.add("-Wall")
	case domain.WarningsHigh:
		a.add(highWarnings...)
	}
	a.addIf(s.WarningsAsErrors, "-Werror")
	a.addIf(s.ISOStrict, "-pedantic-errors")
	return a.list()
}

// commonArgs are shared by unit and PCH compiles so both agree on every ABI-relevant switch.
func (g *gnuTranslator) commonArgs(desc *domain.BuildDescriptor) args {
	s := desc.Settings
	std, _ := g.StandardFlag(desc.Language)

	var a args
	a.add(std)
	a.add(g.OptimizationArgs(s)...)
	a.addIf(s.DebugInfo, "-g")
	a.add(g.WarningArgs(s)...)
	if desc.Language.IsCXX() {
		a.addIf(s.NoRTTI, "-fno-rtti")
		a.addIf(s.NoExceptions, "-fno-exceptions")
	}
	a.addIf(s.Threads, "-pthread")
	a.add(g.picArgs(desc)...)
	a.prefixed("-D", desc.Defines)
	a.prefixed("-I", desc.IncludeDirs)
	a.addIf(desc.ShowIncludes, "-H")
	return a
}

func (g *gnuTranslator) picArgs(desc *domain.BuildDescriptor) []string {
	switch {
	case desc.Kind == domain.KindApplication && desc.Settings.ASLR && g.tc.IsLinux():
		return []string{"-fpie"}
	case desc.Kind == domain.KindSharedLibrary && g.tc.IsPOSIX():
		return []string{"-fPIC"}
	case desc.Kind == domain.KindStaticLibrary && desc.Settings.ASLR && g.tc.IsPOSIX():
		return []string{"-fPIC"}
	default:
		return nil
	}
}

func (g *gnuTranslator) CompileArgs(desc *domain.BuildDescriptor, unit domain.CompileUnit, pch domain.PCHState) []string {
	a := g.commonArgs(desc)
	if pch.Active() {
		// gcc picks <header>.gch up implicitly; clang needs the artifact spelled out.
		a.add("-include", domain.PCHIncludePath(desc.OutputDir, pch.Header))
		a.addIf(g.tc.IsClang(), "-include-pch", pch.Artifact)
	}
	a.add("-c", unit.Source, "-o", unit.Object)
	a.add(desc.ExtraCompilerArgs...)
	return a.list()
}

func (g *gnuTranslator) PCHCreateArgs(desc *domain.BuildDescriptor, pch domain.PCHState) []string {
	lang := "c-header"
	if desc.Language.IsCXX() {
		lang = "c++-header"
	}

	// The forwarding stub is the main file; the real header may carry #pragma once.
	a := g.commonArgs(desc)
	a.add("-x", lang, domain.PCHIncludePath(desc.OutputDir, pch.Header), "-o", pch.Artifact)
	a.add(desc.ExtraCompilerArgs...)
	return a.list()
}

func (g *gnuTranslator) PCHObjects(*domain.BuildDescriptor, domain.PCHState) []string {
	return nil
}

func (g *gnuTranslator) LinkArgs(desc *domain.BuildDescriptor, objects []string) []string {
	s := desc.Settings

	var a args
	a.add("-o", desc.OutputFile)
	a.addIf(s.LTO, "-flto")
	a.addIf(s.DebugInfo, "-g")
	a.addIf(s.Threads, "-pthread")
	if s.Runtime.IsStatic() {
		a.addIf(desc.Language.IsCXX(), "-static-libstdc++")
		a.add("-static-libgcc")
	}

	switch desc.Kind {
	case domain.KindApplication:
		a.addIf(s.ASLR && g.tc.IsLinux(), "-pie")
	case domain.KindSharedLibrary:
		if g.tc.IsApple() {
			a.add("-dynamiclib")
		} else {
			a.add("-shared")
		}
		a.addIf(desc.GenerateImportLib && desc.ImportLibrary != "", "-Wl,--out-implib,"+desc.ImportLibrary)
	case domain.KindStaticLibrary:
	}

	a.add(objects...)
	a.prefixed("-L", desc.LibDirs)
	for _, lib := range desc.LinkArchives {
		a.add(gnuLibArg(lib))
	}
	a.add(desc.ExtraLinkerArgs...)
	return a.list()
}

func (g *gnuTranslator) ArchiveArgs(desc *domain.BuildDescriptor, objects []string) []string {
	var a args
	a.add("rcs", desc.OutputFile)
	a.add(objects...)
	return a.list()
}

// gnuLibArg passes paths through and turns bare names into -l switches.
func gnuLibArg(lib string) string {
	if strings.ContainsAny(lib, `/\`) || filepath.Ext(lib) != "" {
		return lib
	}
	return "-l" + lib
}

func optLevel(level int) string {
	return strconv.Itoa(min(max(level, 0), 3))
}
