package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/docformat/internal/app"
	"github.com/oshokin/docformat/internal/config"
	"github.com/oshokin/docformat/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals // The log file sink is opened in initConfig and closed when Execute returns.
	closeLogFile = func() error { return nil }

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "docformat",
		Short: "Detect, format, minify, convert and validate JSON and YAML documents.",
		Long: `docformat is a CLI tool for working with JSON and YAML documents.
It can:
- Detect whether a document is JSON or YAML
- Pretty-print documents with a configurable indentation
- Minify JSON
- Convert JSON to YAML and YAML to JSON
- Validate syntax, reporting the failing line, and optionally check a JSON Schema

Files are given as arguments; no arguments or "-" means standard input.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

// Execute executes the root command and exits with a non-zero code on failure.
func Execute() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(ctx, signals...)

	defer stop()

	defer func() {
		_ = logger.Logger().Sync()
		_ = closeLogFile()
	}()

	err := rootCmd.ExecuteContext(ctx)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrValidationFailed):
		// The report has already been printed.
		return 1
	default:
		logger.Error(ctx, err)

		return 1
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	flags.String(
		"log-level",
		"",
		"logging level: debug, info, warn, error.")

	flags.IntP(
		"indent",
		"i",
		0,
		"indentation width of pretty output, from 2 to 8.")

	flags.Bool(
		"no-color",
		false,
		"disable coloured reports.")

	flags.IntP(
		"jobs",
		"j",
		0,
		"number of files processed simultaneously.")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)

	if appConfig.LogFile == "" {
		return nil
	}

	l, closeFn, err := logger.NewWithFileSink(nil, logger.FileSinkConfig{
		Path:       appConfig.LogFile,
		MaxSizeMB:  appConfig.LogFileMaxSizeMB,
		MaxBackups: appConfig.LogFileMaxBackups,
		Compress:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger.SetLogger(l)

	closeLogFile = closeFn

	return nil
}

// bindFlagsToConfig copies the flags set on the command line over the
// configuration values and validates the result.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("indent"); flag != nil && flag.Changed {
		cfg.Indent, _ = flags.GetInt("indent")
	}

	if flag := flags.Lookup("no-color"); flag != nil && flag.Changed {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}

	if flag := flags.Lookup("jobs"); flag != nil && flag.Changed {
		jobs, _ := flags.GetInt("jobs")
		cfg.MaxConcurrentFiles = int64(jobs)
	}

	if flag := flags.Lookup("format"); flag != nil && flag.Changed {
		cfg.Format, _ = flags.GetString("format")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("write"); flag != nil && flag.Changed {
		cfg.WriteInPlace, _ = flags.GetBool("write")
	}

	if flag := flags.Lookup("schema"); flag != nil && flag.Changed {
		cfg.SchemaPath, _ = flags.GetString("schema")
	}

	return config.ValidateConfig(cfg)
}
