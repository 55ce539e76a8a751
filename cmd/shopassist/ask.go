package main

import (
	"strings"

	"github.com/shopassist/backend/internal/delivery/console"
	"github.com/shopassist/backend/internal/usecase"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [request]",
	Short: "Extract one shopping request in the terminal",
	Long: `Reads a shopping request from the arguments, or prompts for one on stdin,
and prints the JSON the model returns.

Example:
  shopassist ask "do laal joote size 42"`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	runConfig, err := buildRunConfig(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	session := console.NewSession(usecase.NewRunner(logger), runConfig)
	return session.Run(cmd.Context(), strings.Join(args, " "), cmd.InOrStdin(), cmd.OutOrStdout())
}
