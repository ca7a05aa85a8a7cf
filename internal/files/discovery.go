package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"quizstats/internal/config"
	apperrors "quizstats/internal/errors"
	"quizstats/pkg/contracts/domain"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates scoresheet workbooks in an input directory. A scoresheet
// is named <prefix><round><room>.xlsx, e.g. MATCH30.xlsx for round 3, room 0.
type Discovery struct {
	dir    string
	prefix string
}

// NewDiscovery creates a new scoresheet discovery for dir
func NewDiscovery(dir, prefix string) *Discovery {
	return &Discovery{dir: dir, prefix: prefix}
}

// Dir returns the input directory
func (d *Discovery) Dir() string {
	return d.dir
}

// ScoresheetName returns the file name of the scoresheet for a room and round
func ScoresheetName(prefix string, room, round int) string {
	return fmt.Sprintf("%s%d%d%s", prefix, round, room, config.ScoresheetExt)
}

// Path returns where the scoresheet for ref is expected, whether or not it exists
func (d *Discovery) Path(ref domain.GameRef) string {
	return filepath.Join(d.dir, ScoresheetName(d.prefix, ref.Room, ref.Round))
}

// Locate returns the path of the scoresheet for ref. A missing file is a
// NOT_FOUND error.
func (d *Discovery) Locate(ref domain.GameRef) (string, error) {
	path := d.Path(ref)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", apperrors.NewNotFoundError("scoresheet "+filepath.Base(path), err).
			WithContext("room", ref.Room).
			WithContext("round", ref.Round)
	}
	if err != nil {
		return "", apperrors.NewStorageError("failed to stat scoresheet", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a scoresheet", path), nil)
	}
	return path, nil
}

// Missing returns the grid entries that have no scoresheet on disk
func (d *Discovery) Missing(rooms, rounds int) ([]domain.GameRef, error) {
	var missing []domain.GameRef
	for _, ref := range domain.Grid(rooms, rounds) {
		if _, err := d.Locate(ref); err != nil {
			if !apperrors.IsType(err, apperrors.ErrTypeNotFound) {
				return nil, err
			}
			missing = append(missing, ref)
		}
	}
	return missing, nil
}

// Unexpected returns workbooks in the directory that are not part of the
// grid, such as scoresheets for a round beyond the configured count.
func (d *Discovery) Unexpected(rooms, rounds int) ([]FileInfo, error) {
	all, err := d.FindExcelFiles()
	if err != nil {
		return nil, err
	}

	expected := make(map[string]bool, rooms*rounds)
	for _, ref := range domain.Grid(rooms, rounds) {
		expected[ScoresheetName(d.prefix, ref.Room, ref.Round)] = true
	}

	var extra []FileInfo
	for _, f := range all {
		if !expected[f.Name] {
			extra = append(extra, f)
		}
	}
	return extra, nil
}

// FindExcelFiles finds all Excel files in the input directory, skipping
// Office lock files.
func (d *Discovery) FindExcelFiles() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.HasSuffix(strings.ToLower(name), config.ScoresheetExt) {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			files = append(files, FileInfo{
				Path:    filepath.Join(d.dir, name),
				Name:    name,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}
