// Package validation checks the pipeline's filesystem preconditions
// before a run starts.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator validates source files and output locations.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a file validator. A nil logger falls back
// to slog.Default().
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// allowed source extensions per file role
var sourceExtensions = map[string][]string{
	"customers": {".csv"},
	"orders":    {".json"},
	"payments":  {".xlsx", ".xls"},
}

// ValidateSourceFile checks that a configured source path, when
// present, is a regular file with the expected extension for its
// role. A missing file is not an error, ingestion reports it as a
// warning and continues with an empty table.
func (v *FileValidator) ValidateSourceFile(role, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("source file missing",
			slog.String("role", role),
			slog.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s source %s: %w", role, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s source %s is a directory", role, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	allowed, ok := sourceExtensions[role]
	if !ok {
		return fmt.Errorf("unknown source role %q", role)
	}
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("%s source %s has unsupported extension %q (expected %s)",
		role, path, ext, strings.Join(allowed, " or "))
}

// ValidateOutputDirectory ensures the output directory exists or can
// be created, and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	os.Remove(probe)

	v.logger.Debug("output directory validated", slog.String("directory", dir))
	return nil
}
