package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yildizm/smishguard/internal/config"
	"github.com/yildizm/smishguard/internal/emoji"
	"github.com/yildizm/smishguard/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	apiBase   string

	globalConfig *config.Config
	appLogger    *logger.Logger
	flushLogger  func()
)

// ExitError carries a process exit code. A nil Err means the command
// already reported the outcome and nothing more should be printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// ShouldReport reports whether err still needs to be printed
func ShouldReport(err error) bool {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Err != nil
	}
	return err != nil
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	if version != "" {
		buildVersion = version
	}

	rootCmd := &cobra.Command{
		Use:   "smishguard",
		Short: "Check suspicious SMS and DMs for smishing",
		Long: `SmishGuard sends a message you received to an analysis service and shows
whether it looks like smishing, together with the reasons for the verdict.

Run without a subcommand to open the interactive terminal app.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupGlobals,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if flushLogger != nil {
				flushLogger()
			}
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, pretty)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "analysis service base URL (overrides config)")

	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDevServerCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setupGlobals loads configuration and the logger before any subcommand runs
func setupGlobals(cmd *cobra.Command, args []string) error {
	// Auto-disable emojis on Windows if not explicitly set
	if runtime.GOOS == "windows" && !cmd.Flags().Changed("no-emoji") {
		noEmoji = true
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiBase != "" {
		cfg.API.BaseURL = apiBase
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --api-base: %w", err)
		}
	}
	if cfg.UI.NoEmoji {
		noEmoji = true
	}
	emoji.SetEmojiDisabled(noEmoji)

	log, flush, err := logger.Build(cfg.LoggerOptions(verbose))
	if err != nil {
		return err
	}

	globalConfig = cfg
	appLogger = log
	flushLogger = flush
	return nil
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SmishGuard %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the loaded configuration, or defaults before loading
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func getLogger() *logger.Logger {
	if appLogger == nil {
		return logger.Nop()
	}
	return appLogger
}

func isVerbose() bool {
	return verbose
}

// getOutputFormat prefers the flag, then the configured default
func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

func useColor() bool {
	return !noColor
}

func isEmojiDisabled() bool {
	return noEmoji
}
