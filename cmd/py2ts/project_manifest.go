package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noPy2tsTomlMessage = "no py2ts.toml found\nplease specify the directory explicitly, e.g.:\n  py2ts batch path/to/sources"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package   packageConfig   `toml:"package"`
	Transpile transpileConfig `toml:"transpile"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type transpileConfig struct {
	// Source is the directory scanned for *.py files, relative to the
	// manifest location.
	Source string `toml:"source"`
	// Out receives the *.ts outputs, relative to the manifest location.
	Out string `toml:"out"`
	// Jobs caps the batch worker pool; 0 means all CPUs.
	Jobs int `toml:"jobs"`
}

func findPy2tsToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "py2ts.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findPy2tsToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("transpile", "source") || strings.TrimSpace(cfg.Transpile.Source) == "" {
		// По умолчанию источники лежат рядом с манифестом
		cfg.Transpile.Source = "."
	}
	return cfg, nil
}
