package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/docformat/internal/formatter"
	"github.com/oshokin/docformat/internal/logger"
	"github.com/oshokin/docformat/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// LogFile is an optional path of a rotating log file written next to the console output.
	LogFile string `mapstructure:"log_file"`
	// LogFileMaxSizeMB is the size in megabytes that triggers log rotation.
	LogFileMaxSizeMB int `mapstructure:"log_file_max_size_mb"`
	// LogFileMaxBackups is the number of rotated log files to keep.
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// Indent is the indentation width of pretty output.
	Indent int `mapstructure:"indent"`
	// MaxInputSize is the largest accepted input (e.g., "10MB", "512KB").
	MaxInputSize string `mapstructure:"max_input_size"`
	// MaxFiles is the largest number of inputs accepted in one run.
	MaxFiles int64 `mapstructure:"max_files"`
	// MaxConcurrentFiles is the maximum number of files processed simultaneously.
	MaxConcurrentFiles int64 `mapstructure:"max_concurrent_files"`
	// OutputPath is the directory where results are written; empty means standard output.
	OutputPath string `mapstructure:"output_path"`
	// ShowProgress enables the progress bar for multi-file runs.
	ShowProgress bool `mapstructure:"show_progress"`
	// NoColor disables coloured reports.
	NoColor bool `mapstructure:"no_color"`
	// Format forces the input format instead of detecting it ("json" or "yaml").
	Format string `mapstructure:"format"`
	// WriteInPlace rewrites input files instead of printing results (set from flags).
	WriteInPlace bool
	// SchemaPath is the JSON Schema used by validate (set from flags).
	SchemaPath string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxInputSize is the parsed input size limit in bytes.
	ParsedMaxInputSize int64
	// ParsedFormat is the parsed forced format; Undetermined means auto-detection.
	ParsedFormat formatter.Format
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".docformat.yaml"

	// EnvPrefix is the prefix of environment variables overriding configuration keys.
	EnvPrefix = "DOCFORMAT"

	// DefaultLogLevel is the default logging verbosity.
	DefaultLogLevel = "info"

	// DefaultMaxInputSize is the default input size limit.
	DefaultMaxInputSize = "10MB"

	// DefaultMaxFiles is the default number of inputs accepted in one run.
	DefaultMaxFiles = 20

	// DefaultMaxConcurrentFiles is the default number of files processed simultaneously.
	DefaultMaxConcurrentFiles = 4

	// DefaultLogFileMaxSizeMB is the default size that triggers log rotation.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of rotated log files to keep.
	DefaultLogFileMaxBackups = 3
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidIndent indicates that the indentation width is out of range.
	ErrInvalidIndent = errors.New("invalid indent")
	// ErrInvalidMaxInputSize indicates that the input size limit is invalid.
	ErrInvalidMaxInputSize = errors.New("max_input_size must be positive")
	// ErrInvalidMaxFiles indicates that the file count limit is invalid.
	ErrInvalidMaxFiles = errors.New("max_files must be a positive integer")
	// ErrInvalidConcurrentFiles indicates that the concurrency limit is invalid.
	ErrInvalidConcurrentFiles = errors.New("max_concurrent_files must be a positive integer")
	// ErrInvalidLogFileLimits indicates that log rotation limits are invalid.
	ErrInvalidLogFileLimits = errors.New("log file size and backups must not be negative")
)

// Defaults returns a configuration filled with default values.
func Defaults() *Config {
	return &Config{
		LogLevel:           DefaultLogLevel,
		LogFileMaxSizeMB:   DefaultLogFileMaxSizeMB,
		LogFileMaxBackups:  DefaultLogFileMaxBackups,
		Indent:             formatter.DefaultIndent,
		MaxInputSize:       DefaultMaxInputSize,
		MaxFiles:           DefaultMaxFiles,
		MaxConcurrentFiles: DefaultMaxConcurrentFiles,
		ShowProgress:       true,
	}
}

// LoadConfig loads configuration settings from a YAML file and the environment.
// A missing default file is not an error: defaults are used instead.
// A missing file that was named explicitly is.
func LoadConfig(configFilename string) (*Config, error) {
	v := newViper()

	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := Defaults()

	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_file_max_size_mb", defaults.LogFileMaxSizeMB)
	v.SetDefault("log_file_max_backups", defaults.LogFileMaxBackups)
	v.SetDefault("indent", defaults.Indent)
	v.SetDefault("max_input_size", defaults.MaxInputSize)
	v.SetDefault("max_files", defaults.MaxFiles)
	v.SetDefault("max_concurrent_files", defaults.MaxConcurrentFiles)
	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("show_progress", defaults.ShowProgress)
	v.SetDefault("no_color", defaults.NoColor)
	v.SetDefault("format", defaults.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if cfg.Indent < formatter.MinIndent || cfg.Indent > formatter.MaxIndent {
		return fmt.Errorf("%w: must be between %d and %d", ErrInvalidIndent, formatter.MinIndent, formatter.MaxIndent)
	}

	maxInputSize := strings.TrimSpace(cfg.MaxInputSize)
	if maxInputSize == "" {
		return ErrInvalidMaxInputSize
	}

	parsedMaxInputSize, err := humanize.ParseBytes(maxInputSize)
	if err != nil {
		return fmt.Errorf("failed to parse max input size: %w", err)
	}

	if parsedMaxInputSize == 0 {
		return ErrInvalidMaxInputSize
	}

	cfg.ParsedMaxInputSize = utils.SafeUint64ToInt64(parsedMaxInputSize)

	if cfg.MaxFiles <= 0 {
		return ErrInvalidMaxFiles
	}

	if cfg.MaxConcurrentFiles <= 0 {
		return ErrInvalidConcurrentFiles
	}

	if cfg.LogFileMaxSizeMB < 0 || cfg.LogFileMaxBackups < 0 {
		return ErrInvalidLogFileLimits
	}

	cfg.ParsedFormat = formatter.Undetermined

	if format := strings.TrimSpace(cfg.Format); format != "" && format != "auto" {
		cfg.ParsedFormat, err = formatter.ParseFormat(format)
		if err != nil {
			return fmt.Errorf("failed to parse format: %w", err)
		}
	}

	return nil
}
