package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths holds the resolved file system locations for one run.
type Paths struct {
	BaseDir    string
	InputDir   string
	OutputPath string
	// OutputDir receives CSV tables. It is OutputPath itself when that has no
	// extension, otherwise its parent.
	OutputDir string
	LogFile   string
}

// ResolvePaths makes every configured path absolute relative to baseDir.
// An empty baseDir means the current working directory.
func ResolvePaths(cfg *Config, baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(baseDir, p)
	}

	p := &Paths{
		BaseDir:    baseDir,
		InputDir:   abs(cfg.Tournament.InputDir),
		OutputPath: abs(cfg.Report.OutputPath),
		LogFile:    abs(cfg.Logging.FilePath),
	}
	if cfg.Report.Format == FormatCSV && filepath.Ext(p.OutputPath) == "" {
		p.OutputDir = p.OutputPath
	} else {
		p.OutputDir = filepath.Dir(p.OutputPath)
	}
	return p, nil
}

// LogPathResolution logs resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("input_dir", p.InputDir),
		slog.String("output_path", p.OutputPath),
		slog.String("output_dir", p.OutputDir))
}
