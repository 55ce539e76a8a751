package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopassist/backend/config"
	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/infrastructure/llm"
	"github.com/shopassist/backend/internal/logging"
	"github.com/shopassist/backend/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

var (
	// Global flags
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shopassist",
	Short: "Gemini Shopping Assistant",
	Long: `Turns free-text shopping requests into structured JSON using Gemini.

Requests in any language are normalized to English product entries with
category, name, size or weight, color and quantity.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		} else if cmd.Name() == askCmd.Name() {
			// keep the console readable
			level = "warn"
		}

		logger, err = logging.New(level, cfg.Server.Environment)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err and returns the exit code. Blank input was already
// answered by the console session, so it exits without a second message.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, domain.ErrInvalidInput) {
		return 1
	}
	fmt.Fprintf(w, "❌ %v\n", err)
	return 1
}

// buildRunConfig connects to the model provider and bundles the handle with
// the model id and tracing flag
func buildRunConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (usecase.RunConfig, error) {
	conn, err := llm.Connect(ctx, llm.Options{
		Provider:          cfg.LLM.Provider,
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		GenAIBaseURL:      cfg.LLM.GenAIBaseURL,
		Model:             cfg.LLM.Model,
		Timeout:           cfg.LLM.Timeout,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	}, logger)
	if err != nil {
		return usecase.RunConfig{}, fmt.Errorf("failed to connect to model provider: %w", err)
	}

	logger.Debug("run configuration ready",
		zap.String("model", conn.Model()),
		zap.String("api_key", logging.MaskKey(cfg.LLM.APIKey)),
		zap.Bool("tracing_disabled", cfg.LLM.TracingDisabled))

	return usecase.RunConfig{
		Model:           conn.Model(),
		Client:          conn.Client(),
		Temperature:     cfg.LLM.Temperature,
		TracingDisabled: cfg.LLM.TracingDisabled,
	}, nil
}
