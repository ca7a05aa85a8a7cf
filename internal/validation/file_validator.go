package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"quizstats/internal/config"
	apperrors "quizstats/internal/errors"
	"quizstats/internal/files"
	"quizstats/pkg/contracts/domain"
)

// FileValidator checks the input and output locations of a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory checks that dir exists and is a directory
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return apperrors.NewNotFoundError("input directory "+dir, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat directory "+dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewValidationError(fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory "+dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory "+dir+" is not writable", err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateScoresheet checks that path is a readable xlsx workbook and not an
// editor lock file.
func (v *FileValidator) ValidateScoresheet(path string) error {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		return apperrors.NewValidationError(fmt.Sprintf("%s is a temporary Excel file", base), nil)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != config.ScoresheetExt {
		return apperrors.NewValidationError(fmt.Sprintf("%s is not an xlsx workbook (extension: %s)", base, ext), nil)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apperrors.NewNotFoundError("scoresheet "+base, err)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat "+path, err)
	}
	if info.IsDir() {
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}
	if info.Size() == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("%s is empty", base), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError("scoresheet "+base+" is not readable", err)
	}
	file.Close()

	v.logger.Debug("Scoresheet validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ScoresheetCheck summarises which scoresheets of a tournament are usable.
type ScoresheetCheck struct {
	Expected   int
	Missing    []domain.GameRef
	Invalid    map[domain.GameRef]error
	Unexpected []files.FileInfo
}

// OK reports whether every expected scoresheet is present and valid.
func (c *ScoresheetCheck) OK() bool {
	return len(c.Missing) == 0 && len(c.Invalid) == 0
}

// CheckScoresheets verifies every scoresheet of a rooms x rounds tournament
// without reading its contents. Files in the directory that match no game are
// reported but do not fail the check.
func (v *FileValidator) CheckScoresheets(d *files.Discovery, rooms, rounds int) (*ScoresheetCheck, error) {
	if err := v.ValidateInputDirectory(d.Dir()); err != nil {
		return nil, err
	}

	check := &ScoresheetCheck{
		Expected: len(domain.Grid(rooms, rounds)),
		Invalid:  make(map[domain.GameRef]error),
	}
	for _, ref := range domain.Grid(rooms, rounds) {
		path, err := d.Locate(ref)
		if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			check.Missing = append(check.Missing, ref)
			continue
		}
		if err == nil {
			err = v.ValidateScoresheet(path)
		}
		if err != nil {
			check.Invalid[ref] = err
		}
	}

	unexpected, err := d.Unexpected(rooms, rounds)
	if err != nil {
		return nil, err
	}
	check.Unexpected = unexpected

	v.logger.Info("Scoresheets checked",
		slog.String("directory", d.Dir()),
		slog.Int("expected", check.Expected),
		slog.Int("missing", len(check.Missing)),
		slog.Int("invalid", len(check.Invalid)),
		slog.Int("unexpected", len(check.Unexpected)))
	return check, nil
}
