package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "quizstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Tournament TournamentConfig `yaml:"tournament" envconfig:"TOURNAMENT"`
	Report     ReportConfig     `yaml:"report" envconfig:"REPORT"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// TournamentConfig describes the bounded room/round grid and where its
// scoresheets live. Rooms are numbered 0..Rooms-1, rounds 1..Rounds.
type TournamentConfig struct {
	Rounds     int    `yaml:"rounds" split_words:"true" validate:"min=1"`
	Rooms      int    `yaml:"rooms" split_words:"true" validate:"min=1"`
	InputDir   string `yaml:"input_dir" split_words:"true" validate:"required"`
	FilePrefix string `yaml:"file_prefix" split_words:"true"`
	ParseMode  string `yaml:"parse_mode" split_words:"true" validate:"oneof=lenient strict"`
}

// ReportConfig controls the report emitter
type ReportConfig struct {
	OutputPath string `yaml:"output_path" split_words:"true" validate:"required"`
	Format     string `yaml:"format" split_words:"true" validate:"oneof=xlsx csv"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" split_words:"true" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" split_words:"true"`
}

// Strict reports whether malformed numeric cells should fail the run
func (t TournamentConfig) Strict() bool {
	return t.ParseMode == ParseModeStrict
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then environment
// variables prefixed with EnvPrefix.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFromFile(path, cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to load config from file", err).
					WithContext("path", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, apperrors.NewConfigError("failed to stat config file", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML document at filePath onto cfg. Keys absent
// from the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and fills derived defaults.
func (c *Config) Validate() error {
	if c.Tournament.FilePrefix == "" {
		c.Tournament.FilePrefix = DefaultFilePrefix
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Tournament: TournamentConfig{
			Rounds:     DefaultRounds,
			Rooms:      DefaultRooms,
			InputDir:   DefaultInputDir,
			FilePrefix: DefaultFilePrefix,
			ParseMode:  ParseModeLenient,
		},
		Report: ReportConfig{
			OutputPath: DefaultOutputPath,
			Format:     FormatXLSX,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}

// String renders the config for startup logging.
func (c *Config) String() string {
	return fmt.Sprintf("rounds=%d rooms=%d input=%s prefix=%s mode=%s out=%s format=%s",
		c.Tournament.Rounds, c.Tournament.Rooms, c.Tournament.InputDir,
		c.Tournament.FilePrefix, c.Tournament.ParseMode,
		c.Report.OutputPath, c.Report.Format)
}
