// Package pch decides whether the precompiled header must be regenerated and builds it.
package pch

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/diagnostics"
	"go.trai.ch/kiln/internal/engine/runner"
	"go.trai.ch/kiln/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// Manager owns the precompiled header of a build.
type Manager struct {
	fs     ports.FileSystem
	runner *runner.Runner
}

// New creates a new Manager.
func New(fs ports.FileSystem, r *runner.Runner) *Manager {
	return &Manager{fs: fs, runner: r}
}

// Decide returns the precompiled header state of desc.
//
// The artifact is regenerated when it is missing, older than the header, or when the
// compiler settings changed since the last successful build. MSVC also needs the object
// emitted alongside the artifact, so a missing object forces a rebuild there too.
func (m *Manager) Decide(desc *domain.BuildDescriptor) (domain.PCHState, error) {
	if !desc.UsesPCH() {
		return domain.PCHState{Mode: domain.PCHNotUsed}, nil
	}

	state := domain.PCHState{
		Mode:     domain.PCHUse,
		Header:   desc.PrecompiledHeader,
		Artifact: domain.PCHArtifactPath(desc.OutputDir, desc.PrecompiledHeader, desc.Toolchain),
	}

	header, err := m.fs.Stat(state.Header)
	if err != nil {
		return domain.PCHState{}, err
	}
	artifact, err := m.fs.Stat(state.Artifact)
	if err != nil {
		return domain.PCHState{}, err
	}

	if desc.SettingsChanged || !artifact.Exists || header.NewerThan(artifact) {
		state.Mode = domain.PCHCreate
		return state, nil
	}

	if desc.Toolchain.IsMSVC() {
		obj, err := m.fs.Stat(domain.PCHObjectPath(desc.OutputDir, desc.PrecompiledHeader, desc.Toolchain))
		if err != nil {
			return domain.PCHState{}, err
		}
		if !obj.Exists {
			state.Mode = domain.PCHCreate
		}
	}

	return state, nil
}

// Ensure makes the artifact of state current and returns the state compiles should use.
// In Create mode it runs exactly one header compile and waits for it; nothing else runs
// until it returns.
func (m *Manager) Ensure(ctx context.Context, desc *domain.BuildDescriptor, state domain.PCHState) (domain.PCHState, error) {
	if state.Mode != domain.PCHCreate {
		return state, nil
	}

	dir := domain.PCHDir(desc.OutputDir)
	if err := m.fs.MkdirAll(dir); err != nil {
		return domain.PCHState{}, err
	}

	if !desc.Toolchain.IsMSVC() {
		// GNU drivers are told to -include pch/<header>; the stub forwards to the real
		// header so a rejected .gch still compiles.
		stub := fmt.Sprintf("#include %q\n", filepath.ToSlash(absPath(state.Header)))
		if err := m.fs.WriteFile(domain.PCHIncludePath(desc.OutputDir, state.Header), []byte(stub)); err != nil {
			return domain.PCHState{}, err
		}
	}

	tr := toolchain.New(desc.Toolchain)
	cmd := toolchain.PCHCommand(tr, desc, state)

	out := m.runner.Run(ctx, diagnostics.New(desc.Toolchain, desc.SystemIncludeRoots),
		state.Artifact, domain.StagePCH, state.Header, cmd)

	if out.Err != nil {
		return domain.PCHState{}, zerr.With(out.Err, "pch", state.Header)
	}
	if !out.Result.Success() {
		err := zerr.With(zerr.Wrap(domain.ErrPchFailed, "header compile exited with non-zero status"), "pch", state.Header)
		return domain.PCHState{}, zerr.With(err, "exit_code", out.Result.ExitCode)
	}

	state.Mode = domain.PCHUse
	return state, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
