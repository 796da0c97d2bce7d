package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/WolofBridge/internal/app"
	"github.com/Rorical/WolofBridge/internal/config"
	"github.com/Rorical/WolofBridge/internal/logger"
)

var (
	logFile   string
	logLevel  string
	logFormat string
	endpoint  string
)

var rootCmd = &cobra.Command{
	Use:   "wolofbridge",
	Short: "Ask questions in Wolof from your terminal",
	Long: `WolofBridge sends a question in Wolof to a translation backend and shows the
translated question, the model's answer and the answer translated back to Wolof.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		if endpoint != "" {
			os.Setenv(config.EndpointEnv, endpoint)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runChat()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path, '-' for stderr (default ~/.wolofbridge/wolofbridge.log)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "backend base URL, overrides the active profile")

	rootCmd.AddCommand(profileCmd)
}

// newLogger writes to the log file unless --log-file says otherwise, so
// neither the TUI nor ask output is interleaved with log lines.
func newLogger() (*zap.Logger, error) {
	path := logFile
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log directory: %w", err)
		}
		path = filepath.Join(dir, "wolofbridge.log")
	}
	return logger.New(logger.Options{Level: logLevel, Format: logFormat, Path: path})
}

func runChat() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	application, err := app.NewApplication(cfg, zl)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
