// Package config resolves the kiln.yaml project manifest into a build descriptor.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const defaultSourceDir = "src"

var validProjectNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

var _ ports.DescriptorLoader = (*Loader)(nil)

// Loader implements ports.DescriptorLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	fs       ports.FileSystem
	resolver *fs.Resolver
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, fsys ports.FileSystem, resolver *fs.Resolver) *Loader {
	return &Loader{Logger: logger, fs: fsys, resolver: resolver}
}

// Load finds kiln.yaml from cwd upwards and resolves it for opts.Profile.
func (l *Loader) Load(cwd string, opts domain.LoadOptions) (*domain.BuildDescriptor, error) {
	manifestPath, err := findManifest(cwd)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := readAndUnmarshalYAML(manifestPath, &m); err != nil {
		return nil, err
	}

	root := filepath.Dir(manifestPath)
	desc, err := l.resolve(root, &m, opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid manifest"), "manifest", manifestPath)
	}
	return desc, nil
}

func findManifest(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, err.Error()), "cwd", cwd)
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, domain.ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no manifest in any parent directory"), "cwd", cwd)
		}
		dir = parent
	}
}

func readAndUnmarshalYAML(path string, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		if errors.Is(err, domain.ErrInvalidArgs) {
			return zerr.With(err, "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

//nolint:cyclop,funlen // one pass over the manifest fields
func (l *Loader) resolve(root string, m *Manifest, opts domain.LoadOptions) (*domain.BuildDescriptor, error) {
	if m.Name == "" {
		return nil, domain.ErrMissingProjectName
	}
	if !validProjectNameRegex.MatchString(m.Name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidProjectName, "invalid name"), "name", m.Name)
	}

	kind, err := parseKind(m.Kind)
	if err != nil {
		return nil, err
	}

	lang, err := domain.ParseLanguage(m.Language, m.Standard)
	if err != nil {
		return nil, err
	}

	tc, err := resolveToolchain(m, opts)
	if err != nil {
		return nil, err
	}

	profileName := opts.Profile
	if profileName == "" {
		profileName = ProfileDebug
	}
	prof, err := resolveProfile(profileName, m.Profiles)
	if err != nil {
		return nil, err
	}

	sourceDir := abs(root, cmp.Or(m.Sources, defaultSourceDir))
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrSourceDirNotFound, "not a directory"), "dir", sourceDir)
	}

	outputDir := domain.ProfileOutputDir(root, profileName)
	// Only the project's own build tree; a source folder may itself be called build.
	skip := []string{filepath.Join(root, domain.BuildDirName)}

	sources, err := l.fs.WalkFiles(sourceDir, lang.SourceExts(), skip)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrNoSources, "empty source directory"), "dir", sourceDir),
			"extensions", strings.Join(lang.SourceExts(), " "))
	}
	slices.Sort(sources)

	includeDirs := absAll(root, m.Include)
	headers, err := l.headers(append([]string{sourceDir}, includeDirs...), skip)
	if err != nil {
		return nil, err
	}

	libs, libTriggers := resolveLibs(root, m.Libs)
	relink, err := l.resolver.ResolvePatterns(m.Relink, root)
	if err != nil {
		return nil, err
	}

	desc := &domain.BuildDescriptor{
		Name:               m.Name,
		Profile:            profileName,
		Kind:               kind,
		GenerateImportLib:  kind == domain.KindSharedLibrary && m.ImportLib,
		Toolchain:          tc,
		Language:           lang,
		Settings:           prof.settings,
		Defines:            append(slices.Clone(prof.defines), m.Defines...),
		SourceDir:          sourceDir,
		OutputDir:          outputDir,
		Sources:            sources,
		Headers:            headers,
		IncludeDirs:        includeDirs,
		LibDirs:            absAll(root, m.LibDirs),
		LinkArchives:       libs,
		RelinkTriggers:     mergeUnique(relink, libTriggers),
		OutputFile:         filepath.Join(outputDir, domain.OutputFileName(m.Name, kind, tc)),
		ExtraCompilerArgs:  append(slices.Clone([]string(m.CFlags)), prof.cflags...),
		ExtraLinkerArgs:    append(slices.Clone([]string(m.LDFlags)), prof.ldflags...),
		SystemIncludeRoots: systemIncludeRoots(tc),
	}

	if m.PCH != "" {
		desc.PrecompiledHeader = abs(root, m.PCH)
	}
	if desc.GenerateImportLib {
		desc.ImportLibrary = filepath.Join(outputDir, domain.ImportLibraryName(m.Name, tc))
	} else if m.ImportLib {
		l.Logger.Warn(fmt.Sprintf("'import_lib' has no effect for %s projects", kind))
	}

	if err := checkCollisions(desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func (l *Loader) headers(dirs, skip []string) ([]string, error) {
	var headers []string
	for _, dir := range dirs {
		found, err := l.fs.WalkFiles(dir, domain.HeaderExts(), skip)
		if err != nil {
			return nil, err
		}
		headers = append(headers, found...)
	}
	slices.Sort(headers)
	return slices.Compact(headers), nil
}

func parseKind(s string) (domain.ProjectKind, error) {
	switch strings.ToLower(s) {
	case "", "app", "application", "exe":
		return domain.KindApplication, nil
	case "shared", "dll", "dylib":
		return domain.KindSharedLibrary, nil
	case "static", "lib":
		return domain.KindStaticLibrary, nil
	}
	return 0, zerr.With(zerr.Wrap(domain.ErrInvalidProjectKind, "unsupported kind"), "kind", s)
}

// resolveToolchain prefers the explicit option, then the manifest, then gcc.
func resolveToolchain(m *Manifest, opts domain.LoadOptions) (domain.Toolchain, error) {
	name := cmp.Or(opts.Toolchain, m.Toolchain, string(domain.ToolchainGCC))
	id, err := domain.ParseToolchainID(name)
	if err != nil {
		return domain.Toolchain{}, err
	}
	return domain.Toolchain{ID: id, TargetOS: cmp.Or(opts.TargetOS, runtime.GOOS)}, nil
}

// resolveLibs keeps bare library names as they are and makes paths absolute.
// Libraries given as paths also trigger a relink when they change.
func resolveLibs(root string, libs []string) (names, triggers []string) {
	names = make([]string, 0, len(libs))
	for _, lib := range libs {
		if !strings.ContainsAny(lib, `/\`) {
			names = append(names, lib)
			continue
		}
		path := abs(root, lib)
		names = append(names, path)
		triggers = append(triggers, path)
	}
	return names, triggers
}

// checkCollisions rejects sources deriving the same object, e.g. foo.c and foo.cpp.
func checkCollisions(desc *domain.BuildDescriptor) error {
	seen := make(map[string]string, len(desc.Sources))
	for _, u := range desc.Units() {
		key := u.Object
		if desc.Toolchain.IsMSVC() {
			key = strings.ToLower(key)
		}
		if prev, ok := seen[key]; ok {
			err := zerr.With(zerr.Wrap(domain.ErrObjectCollision, "ambiguous object path"), "object", u.Object)
			return zerr.With(zerr.With(err, "first", prev), "second", u.Source)
		}
		seen[key] = u.Source
	}
	return nil
}

// systemIncludeRoots lists the directories whose include trace lines are hidden.
func systemIncludeRoots(tc domain.Toolchain) []string {
	if tc.IsMSVC() {
		var roots []string
		for _, dir := range filepath.SplitList(os.Getenv("INCLUDE")) {
			if dir != "" {
				roots = append(roots, dir)
			}
		}
		return roots
	}
	roots := []string{"/usr/include", "/usr/local/include", "/usr/lib/gcc", "/usr/lib/clang", "/usr/lib/llvm"}
	if tc.IsApple() {
		roots = append(roots, "/Library/Developer", "/Applications/Xcode.app", "/opt/homebrew/include")
	}
	return roots
}

func abs(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func absAll(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, abs(root, p))
	}
	return out
}

func mergeUnique(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
