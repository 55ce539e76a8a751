// Package console is the terminal front end: one prompt, one answer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/usecase"
)

const (
	promptText = "🛒 Enter your shopping request: "
	ruleWidth  = 50
)

// ErrNoInput is returned when stdin closes before a line is read
var ErrNoInput = errors.New("no input received")

// Session runs a single request/answer exchange over a reader and writer
type Session struct {
	runner    *usecase.Runner
	runConfig usecase.RunConfig
}

// NewSession creates a console session
func NewSession(runner *usecase.Runner, runConfig usecase.RunConfig) *Session {
	return &Session{runner: runner, runConfig: runConfig}
}

// Run prompts for a request on in unless input is already given, runs the
// shopping agent and prints the raw output to out
func (s *Session) Run(ctx context.Context, input string, in io.Reader, out io.Writer) error {
	if domain.IsBlank(input) {
		fmt.Fprint(out, promptText)
		line, err := readLine(in)
		if err != nil {
			return err
		}
		input = line
	}

	if domain.IsBlank(input) {
		fmt.Fprintln(out, "Please enter something first.")
		return domain.ErrInvalidInput
	}

	agent := usecase.NewShoppingAgent(s.runConfig)
	result, err := s.runner.Run(ctx, agent, input, s.runConfig)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "🤖 JSON Output:")
	fmt.Fprintln(out, result.Output)
	fmt.Fprintln(out, strings.Repeat("-", ruleWidth))
	return nil
}

func readLine(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}
