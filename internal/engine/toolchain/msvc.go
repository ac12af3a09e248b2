package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

// msvcTranslator speaks the dialect of cl.exe and clang-cl.
type msvcTranslator struct {
	tc domain.Toolchain
}

func (m *msvcTranslator) Toolchain() domain.Toolchain {
	return m.tc
}

func (m *msvcTranslator) Compiler(domain.Language) domain.Command {
	if m.tc.ID == domain.ToolchainClangCL {
		return domain.Command{Program: "clang-cl"}
	}
	return domain.Command{Program: "cl.exe"}
}

func (m *msvcTranslator) Linker(domain.Language) domain.Command {
	if m.tc.ID == domain.ToolchainClangCL {
		return domain.Command{Program: "lld-link"}
	}
	return domain.Command{Program: "link.exe"}
}

func (m *msvcTranslator) Archiver(domain.Settings) domain.Command {
	if m.tc.ID == domain.ToolchainClangCL {
		return domain.Command{Program: "llvm-lib"}
	}
	return domain.Command{Program: "lib.exe"}
}

func (m *msvcTranslator) StandardFlag(lang domain.Language) (string, string) {
	return msvcStandard(lang)
}

func (m *msvcTranslator) OptimizationArgs(s domain.Settings) []string {
	var a args
	switch {
	case s.OptLevel <= 0:
		a.add("/Od")
	case s.OptLevel == 1:
		a.add("/Ox")
	case s.OptLevel == 2:
		a.add("/O1")
	default:
		a.add("/O2", "/Oi")
	}
	a.addIf(s.OptSize, "/Os")
	a.addIf(s.OptSpeed, "/Ot")
	a.addIf(s.LTO, "/GL")
	return a.list()
}

func (m *msvcTranslator) WarningArgs(s domain.Settings) []string {
	var a args
	switch s.Warnings {
	case domain.WarningsNone:
		a.add("/w")
	case domain.WarningsBasic:
		a.add("/W1")
	case domain.WarningsHigh:
		a.add("/W4")
	}
	a.addIf(s.WarningsAsErrors, "/WX")
	a.addIf(s.ISOStrict, "/permissive-")
	return a.list()
}

func (m *msvcTranslator) runtimeArg(r domain.RuntimeLinkage) string {
	switch r {
	case domain.RuntimeDynamicDebug:
		return "/MDd"
	case domain.RuntimeStaticDebug:
		return "/MTd"
	case domain.RuntimeStaticRelease:
		return "/MT"
	default:
		return "/MD"
	}
}

func (m *msvcTranslator) commonArgs(desc *domain.BuildDescriptor) args {
	s := desc.Settings
	std, _ := m.StandardFlag(desc.Language)

	var a args
	a.add("/nologo", "/c")
	a.addIf(desc.ShowIncludes, "/showIncludes")
	a.add(std)
	a.add(m.OptimizationArgs(s)...)
	a.addIf(s.DebugInfo, "/Zi", "/FS", "/sdl", "/Fd:"+dirArg(desc.OutputDir))
	a.add(m.WarningArgs(s)...)
	a.add(m.runtimeArg(s.Runtime))
	if desc.Language.IsCXX() {
		a.addIf(s.NoRTTI, "/GR-")
		if s.NoExceptions {
			a.add("/EHsc-")
		} else {
			a.add("/EHsc")
		}
	}
	a.prefixed("/D", desc.Defines)
	a.prefixed("/I", desc.IncludeDirs)
	return a
}

func (m *msvcTranslator) CompileArgs(desc *domain.BuildDescriptor, unit domain.CompileUnit, pch domain.PCHState) []string {
	a := m.commonArgs(desc)
	if pch.Active() {
		a.add("/Yu"+pch.Header, "/Fp"+pch.Artifact, "/FI"+pch.Header)
	}
	a.add("/Fo"+unit.Object, unit.Source)
	a.add(desc.ExtraCompilerArgs...)
	return a.list()
}

func (m *msvcTranslator) PCHCreateArgs(desc *domain.BuildDescriptor, pch domain.PCHState) []string {
	as := "/Tc"
	if desc.Language.IsCXX() {
		as = "/Tp"
	}

	a := m.commonArgs(desc)
	a.add("/Yc"+pch.Header, "/Fp"+pch.Artifact, "/Fo"+domain.PCHObjectPath(desc.OutputDir, pch.Header, m.tc))
	a.add(as + pch.Header)
	a.add(desc.ExtraCompilerArgs...)
	return a.list()
}

// PCHObjects returns the object cl.exe emits next to the .pch; it holds symbols every unit refers to.
func (m *msvcTranslator) PCHObjects(desc *domain.BuildDescriptor, pch domain.PCHState) []string {
	if !pch.Active() {
		return nil
	}
	return []string{domain.PCHObjectPath(desc.OutputDir, pch.Header, m.tc)}
}

func (m *msvcTranslator) LinkArgs(desc *domain.BuildDescriptor, objects []string) []string {
	s := desc.Settings

	var a args
	a.add("/nologo")
	a.add(objects...)
	a.add("/OUT:" + desc.OutputFile)
	a.addIf(s.DebugInfo, "/DEBUG")
	a.addIf(s.LTO, "/LTCG")
	a.addIf(s.ASLR, "/DYNAMICBASE")
	if desc.Kind == domain.KindSharedLibrary {
		a.add("/DLL")
		a.addIf(desc.GenerateImportLib && desc.ImportLibrary != "", "/IMPLIB:"+desc.ImportLibrary)
	}
	a.prefixed("/LIBPATH:", desc.LibDirs)
	for _, lib := range desc.LinkArchives {
		a.add(msvcLibArg(lib))
	}
	a.add(desc.ExtraLinkerArgs...)
	return a.list()
}

func (m *msvcTranslator) ArchiveArgs(desc *domain.BuildDescriptor, objects []string) []string {
	var a args
	a.add("/nologo", "/OUT:"+desc.OutputFile)
	a.addIf(desc.Settings.LTO, "/LTCG")
	a.add(objects...)
	return a.list()
}

func msvcLibArg(lib string) string {
	if filepath.Ext(lib) != "" {
		return lib
	}
	return lib + ".lib"
}

// dirArg spells a directory the way cl.exe expects for output-directory switches.
func dirArg(dir string) string {
	if strings.HasSuffix(dir, `\`) || strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + `\`
}
