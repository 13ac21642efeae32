package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/njchilds90/trickone/generator"
	"github.com/njchilds90/trickone/symbolic"
)

const (
	maxBodyBytes   = 1 << 20 // 1 MiB
	maxVerifyNodes = 5000
)

type Handler struct {
	gen    Generator
	logger *slog.Logger
}

func NewHandler(gen Generator, logger *slog.Logger) *Handler {
	return &Handler{gen: gen, logger: logger}
}

type GenerateRequest struct {
	Level *int `json:"level" binding:"required"`
}

type GenerateResponse struct {
	Expr      string                 `json:"expr"`
	LaTeX     string                 `json:"latex"`
	Level     int                    `json:"level"`
	Key       string                 `json:"key"`
	Attempts  int                    `json:"attempts"`
	Tree      map[string]interface{} `json:"tree"`
	RequestID string                 `json:"request_id"`
}

// Generate handles POST /generate.
func (h *Handler) Generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	level, err := generator.ParseLevel(*req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.gen.GenerateResult(c.Request.Context(), level)
	switch {
	case errors.Is(err, generator.ErrGenerationExhausted):
		h.logger.Warn("generation exhausted",
			slog.String("request_id", requestID(c)),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not generate a new expression, try again"})
		return
	case errors.Is(err, generator.ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("generate failed",
			slog.String("request_id", requestID(c)),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Expr:      res.Display,
		LaTeX:     res.Typeset,
		Level:     int(res.Level),
		Key:       res.Key,
		Attempts:  res.Attempts,
		Tree:      symbolic.Tree(res.Expr),
		RequestID: requestID(c),
	})
}

type VerifyRequest struct {
	Tree map[string]interface{} `json:"tree" binding:"required"`
}

type VerifyResponse struct {
	Expr       string `json:"expr"`
	LaTeX      string `json:"latex"`
	Key        string `json:"key"`
	Simplified string `json:"simplified"`
	EqualsOne  bool   `json:"equals_one"`
	RequestID  string `json:"request_id"`
}

// Verify handles POST /verify: it rebuilds a client-supplied tree and
// reports whether it simplifies to exactly 1.
func (h *Handler) Verify(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expr, err := symbolic.FromJSON(req.Tree)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if n := symbolic.Size(expr); n > maxVerifyNodes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("expression has %d nodes, limit is %d", n, maxVerifyNodes)})
		return
	}

	simplified, err := symbolic.Simplify(expr)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, VerifyResponse{
		Expr:       expr.String(),
		LaTeX:      expr.LaTeX(),
		Key:        symbolic.Srepr(expr),
		Simplified: simplified.String(),
		EqualsOne:  symbolic.IsZero(symbolic.AddOf(simplified, symbolic.N(-1))),
		RequestID:  requestID(c),
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
