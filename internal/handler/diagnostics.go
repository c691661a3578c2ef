package handler

import (
	"fmt"
	"net/http"

	"trademind/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health godoc
// @Summary      Liveness probe
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TestSupabase godoc
// @Summary      Check the trade store connection
// @Description  Reads at most one trade
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /test-supabase [get]
func (h *Handler) TestSupabase(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.test-supabase")
	defer span.End()

	trades, err := h.journal.Probe(ctx)
	if err != nil {
		h.logger.Warn("store probe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": err.Error(),
			"type":    fmt.Sprintf("%T", err),
		})
		return
	}
	if trades == nil {
		trades = []domain.Trade{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Connected to Supabase successfully",
		"data":    trades,
	})
}

// TestTables godoc
// @Summary      Create or verify the journal tables
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /test-tables [get]
func (h *Handler) TestTables(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.test-tables")
	defer span.End()

	if err := h.journal.EnsureSchema(ctx); err != nil {
		h.logger.Warn("schema check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tables created/verified"})
}
