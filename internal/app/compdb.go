package app

import (
	"context"
	"encoding/json"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// compileCommand is one entry of a JSON compilation database.
type compileCommand struct {
	Directory string   `json:"directory"`
	Arguments []string `json:"arguments"`
	File      string   `json:"file"`
	Output    string   `json:"output"`
}

// CompileDB writes compile_commands.json next to the manifest and returns its path.
// Each entry carries the exact argument vector a build would spawn for the source.
func (a *App) CompileDB(_ context.Context, opts BuildOptions) (string, error) {
	desc, err := a.load(opts)
	if err != nil {
		return "", err
	}

	root := projectRoot(desc)
	tr := toolchain.New(desc.Toolchain)

	pch := domain.PCHState{Mode: domain.PCHNotUsed}
	if desc.UsesPCH() {
		pch = domain.PCHState{
			Mode:     domain.PCHUse,
			Header:   desc.PrecompiledHeader,
			Artifact: domain.PCHArtifactPath(desc.OutputDir, desc.PrecompiledHeader, desc.Toolchain),
		}
	}

	units := desc.Units()
	entries := make([]compileCommand, 0, len(units))
	for _, unit := range units {
		cmd := toolchain.CompileCommand(tr, desc, unit, pch)
		entries = append(entries, compileCommand{
			Directory: root,
			Arguments: cmd.Argv(),
			File:      unit.Source,
			Output:    unit.Object,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCompileDBWriteFailed.Error())
	}

	path := filepath.Join(root, domain.CompileDBFileName)
	if err := a.fs.WriteFile(path, append(data, '\n')); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCompileDBWriteFailed.Error()), "path", path)
	}
	a.logger.Info("wrote " + domain.CompileDBFileName)
	return path, nil
}
