package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopassist/backend/internal/domain"
	"go.uber.org/zap"
)

// ShoppingAgentName is the display name of the shopping agent
const ShoppingAgentName = "Shopping Agent"

// ShoppingAgentInstructions describes the agent's job
const ShoppingAgentInstructions = "You are a smart shopping assistant. " +
	"Use the extract_product_info tool to interpret user queries about items to buy. " +
	"Always output normalized English JSON for database compatibility."

// RunConfig is reused across runs: which model, through which client,
// and whether runs are traced
type RunConfig struct {
	Model           string
	Client          domain.ChatCompleter
	Temperature     float64
	TracingDisabled bool
}

// Agent binds a single tool to a name and instruction string
type Agent struct {
	Name         string
	Instructions string
	Tool         domain.Tool
}

// RunResult is the outcome of one agent run
type RunResult struct {
	RunID     string
	AgentName string
	Model     string
	Input     string
	Output    string
	Duration  time.Duration
}

// String returns the raw output
func (r *RunResult) String() string {
	return r.Output
}

// NewShoppingAgent builds the shopping agent with its extraction tool bound
// to the run configuration's client and model
func NewShoppingAgent(cfg RunConfig) *Agent {
	tool := NewExtractProductInfoTool(cfg.Client, cfg.Model)
	if cfg.Temperature > 0 {
		tool.WithTemperature(cfg.Temperature)
	}

	return &Agent{
		Name:         ShoppingAgentName,
		Instructions: ShoppingAgentInstructions,
		Tool:         tool,
	}
}

// Runner executes agents. It holds no state between runs.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a runner; traces go to logger when a run config enables them
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger.Named("runner")}
}

// Run executes the agent's tool against one input. Blank input is rejected
// before anything reaches the tool.
func (r *Runner) Run(ctx context.Context, agent *Agent, input string, cfg RunConfig) (*RunResult, error) {
	if domain.IsBlank(input) {
		return nil, domain.ErrInvalidInput
	}
	if agent == nil || agent.Tool == nil {
		return nil, fmt.Errorf("agent has no tool to run")
	}

	runID := uuid.NewString()
	start := time.Now()

	if !cfg.TracingDisabled {
		r.logger.Info("agent run started",
			zap.String("run_id", runID),
			zap.String("agent", agent.Name),
			zap.String("tool", agent.Tool.Name()),
			zap.String("model", cfg.Model),
			zap.String("input", input))
	}

	output, err := agent.Tool.Execute(ctx, input)
	elapsed := time.Since(start)
	if err != nil {
		if !cfg.TracingDisabled {
			r.logger.Warn("agent run failed",
				zap.String("run_id", runID),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", agent.Tool.Name(), err)
	}

	if !cfg.TracingDisabled {
		r.logger.Info("agent run finished",
			zap.String("run_id", runID),
			zap.Duration("elapsed", elapsed),
			zap.String("output", output))
	}

	return &RunResult{
		RunID:     runID,
		AgentName: agent.Name,
		Model:     cfg.Model,
		Input:     input,
		Output:    output,
		Duration:  elapsed,
	}, nil
}
