package main

import (
	"fmt"
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/zllibrary/library-service/library/app"
	"github.com/zllibrary/library-service/library/config"
)

var (
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Library book lending service",
	Long: `Library book lending service.

Runs the HTTP API for borrowing, returning, extending and reporting lost books
when called without a subcommand.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment overrides, skipped when missing")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "debug", "log level unless LOG_LEVEL is set")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return app.Run(cfg)
}

func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(err, "load envs from "+envFile)
		}
		stdLog.Printf("%s not found, using process environment", envFile)
	}
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log-level")
	}
	return config.NewConfig(
		config.WithLogLevel(level),
		config.WithWriteTimeout(time.Minute),
	), nil
}
