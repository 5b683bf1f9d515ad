package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the pagenum home directory.
	DefaultDirName = ".pagenum"

	// ScratchDirName is the subdirectory for temporary render files.
	ScratchDirName = "scratch"

	// ExportsDirName is the subdirectory for CLI exports without an explicit output path.
	ExportsDirName = "exports"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the pagenum home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.pagenum).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ScratchDir returns the directory render files are written to.
func (d *Dir) ScratchDir() string {
	return filepath.Join(d.path, ScratchDirName)
}

// ExportsDir returns the directory for exported documents.
func (d *Dir) ExportsDir() string {
	return filepath.Join(d.path, ExportsDirName)
}

// ExportPath returns the path for an exported file name.
func (d *Dir) ExportPath(fileName string) string {
	return filepath.Join(d.ExportsDir(), filepath.Base(fileName))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.ScratchDir(), d.ExportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// CleanScratch removes leftover render files from earlier runs.
func (d *Dir) CleanScratch() error {
	entries, err := os.ReadDir(d.ScratchDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read scratch dir: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(d.ScratchDir(), e.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
