package cli

import (
	"github.com/spf13/cobra"

	"seal-editor/internal/app"
	"seal-editor/internal/config"
	"seal-editor/internal/logger"
)

var (
	logLevel string
	jsonLogs bool
	fontSize float32
	noWatch  bool
)

// runEditor starts the GUI. Tests replace it.
var runEditor = func(cfg config.Config, log logger.Logger, path string) error {
	application, err := app.NewApplication(cfg, log)
	if err != nil {
		return err
	}
	return application.Run(path)
}

var rootCmd = &cobra.Command{
	Use:   "seal-editor [file]",
	Short: "Seal Editor - a minimal plain text editor",
	Long: `Seal Editor opens a window for editing one plain text file.
When a path to an existing file is given it is loaded on startup,
otherwise the window starts with an empty untitled buffer.
Only the first path is used; any further arguments are ignored.`,
	Version:      config.AppVersion,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		log := logger.New(cfg.LogLevel, cfg.JSONLogs)

		var path string
		if len(args) > 0 {
			path = args[0]
		}
		if len(args) > 1 {
			log.Warning("CLI", "extra arguments ignored", map[string]interface{}{
				"ignored": args[1:],
			})
		}

		log.Info("CLI", "starting", map[string]interface{}{
			"version":   config.AppVersion,
			"path":      path,
			"log_level": cfg.LogLevel.String(),
		})
		return runEditor(cfg, log, path)
	},
}

// buildConfig layers explicitly set flags over the environment.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		if err := cfg.SetLogLevel(logLevel); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("json-logs") {
		cfg.JSONLogs = jsonLogs
	}
	if flags.Changed("font-size") {
		cfg.FontSize = fontSize
	}
	if noWatch {
		cfg.WatchFiles = false
	}

	return cfg, cfg.Validate()
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON instead of console output")
	rootCmd.Flags().Float32Var(&fontSize, "font-size", config.DefaultConfig().FontSize, "initial text size in points")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not watch the open file for external changes")

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}
