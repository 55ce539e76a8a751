package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/usecase"
	"go.uber.org/zap"
)

const (
	msgEmptyInput     = "Please enter something first."
	msgRateLimited    = "Too many requests, please try again shortly"
	msgUpstreamFailed = "Could not get an answer from the shopping assistant, please try again"
	msgNotConfigured  = "Shopping assistant not configured"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	runner    *usecase.Runner
	runConfig usecase.RunConfig
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil runner leaves the shopping
// endpoints answering 501.
func NewHandler(runner *usecase.Runner, runConfig usecase.RunConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		runner:    runner,
		runConfig: runConfig,
		logger:    logger,
	}
}

// ExtractRequest is the JSON body of the extraction endpoint
type ExtractRequest struct {
	Input string `json:"input"`
}

// ExtractResponse carries the raw model output; Products is filled only
// when the output happens to decode as the expected shape
type ExtractResponse struct {
	RunID    string                  `json:"runId"`
	Model    string                  `json:"model"`
	Output   string                  `json:"output"`
	Products []domain.ProductRequest `json:"products,omitempty"`
}

// pageData feeds templates/index.html
type pageData struct {
	Model   string
	Input   string
	Output  string
	Warning string
	Error   string
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopassist-backend",
		"version": "1.0.0",
	})
}

// Index renders the empty form
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{Model: h.runConfig.Model})
}

// SubmitForm handles the form post from the index page
func (h *Handler) SubmitForm(c *gin.Context) {
	input := c.PostForm("input")
	page := pageData{Model: h.runConfig.Model, Input: input}

	if domain.IsBlank(input) {
		page.Warning = msgEmptyInput
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	if h.runner == nil {
		page.Error = msgNotConfigured
		c.HTML(http.StatusNotImplemented, "index.html", page)
		return
	}

	result, err := h.run(c, input)
	if err != nil {
		status, msg := errorResponse(err)
		page.Error = msg
		c.HTML(status, "index.html", page)
		return
	}

	page.Output = displayText(result.Output)
	c.HTML(http.StatusOK, "index.html", page)
}

// ExtractProducts handles JSON extraction requests
func (h *Handler) ExtractProducts(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": msgNotConfigured})
		return
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if domain.IsBlank(req.Input) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyInput})
		return
	}

	result, err := h.run(c, req.Input)
	if err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	resp := ExtractResponse{
		RunID:  result.RunID,
		Model:  result.Model,
		Output: result.Output,
	}
	if extraction, ok := domain.DecodeExtraction(result.Output); ok {
		resp.Products = extraction.Products
	}
	c.JSON(http.StatusOK, resp)
}

// run builds a fresh agent for every request
func (h *Handler) run(c *gin.Context, input string) (*usecase.RunResult, error) {
	agent := usecase.NewShoppingAgent(h.runConfig)
	result, err := h.runner.Run(c.Request.Context(), agent, input, h.runConfig)
	if err != nil {
		h.logger.Error("shopping request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// errorResponse maps domain errors to a status and a single user-facing message
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, msgEmptyInput
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	default:
		return http.StatusBadGateway, msgUpstreamFailed
	}
}

// displayText indents output that is valid JSON and leaves anything else as is
func displayText(output string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(output), "", "  "); err != nil {
		return output
	}
	return buf.String()
}
