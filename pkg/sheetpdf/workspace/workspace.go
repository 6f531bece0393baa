// Package workspace manages the per-conversion scratch directory that
// holds rendered documents until they are packaged.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/logfields"
)

// ErrNotCreated is returned when the workspace is used before Create.
var ErrNotCreated = errors.New("workspace not created")

// Manager owns one ephemeral workspace directory.
type Manager struct {
	baseDir string
	prefix  string
	dir     string
	logger  *slog.Logger
}

// NewManager creates a manager that places workspaces under baseDir
// (the system temp dir when empty).
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{baseDir: baseDir, prefix: "sheetpdf-", logger: logger}
}

// Create makes a fresh uniquely named directory.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace base: %w", err)
	}
	dir, err := os.MkdirTemp(m.baseDir, m.prefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	m.dir = dir
	m.logger.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory, empty before Create.
func (m *Manager) Path() string {
	return m.dir
}

// File returns the path of name inside the workspace.
func (m *Manager) File(name string) (string, error) {
	if m.dir == "" {
		return "", ErrNotCreated
	}
	return filepath.Join(m.dir, name), nil
}

// Cleanup removes the workspace directory. It is safe to call more than
// once.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	m.logger.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
