package handler

import (
	"errors"
	"net/http"

	"trademind/internal/domain"
	"trademind/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeResponse is the stored trade plus any feedback generated for it.
type TradeResponse struct {
	domain.Trade
	AIFeedback *string `json:"ai_feedback"`
}

// StructureResponse is the stored structure plus any generated analysis.
type StructureResponse struct {
	domain.Structure
	AIAnalysis *string `json:"ai_analysis,omitempty"`
}

// TradeWebhook godoc
// @Summary      Record a trade
// @Description  Validates the alert, stores an optional base64 screenshot, computes R:R when absent and returns AI feedback when notes are present. The feedback is not saved on the trade.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Token  header  string  false  "Shared webhook secret"
// @Param        token            query   string  false  "Shared webhook secret"
// @Param        payload          body    map[string]interface{}  true  "instrument, direction, entry_price, stop_loss, take_profit, risk_reward?, notes?, screenshot?"
// @Success      201  {object}  TradeResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /webhook/trade [post]
func (h *Handler) TradeWebhook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trade-webhook")
	defer span.End()

	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	res, err := h.ingest.IngestTrade(ctx, payload)
	if err != nil {
		h.logger.Error("trade webhook failed", zap.Error(err))
		writeError(c, err)
		return
	}

	resp := TradeResponse{Trade: *res.Trade, AIFeedback: res.Trade.AIFeedback}
	if res.AIFeedback != nil {
		resp.AIFeedback = res.AIFeedback
	}
	c.JSON(http.StatusCreated, resp)
}

// StructureWebhook godoc
// @Summary      Record a market structure
// @Description  Validates a BOS/CHoCH alert, stores an optional screenshot and returns AI analysis when notes are present. The analysis is not saved.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Token  header  string  false  "Shared webhook secret"
// @Param        token            query   string  false  "Shared webhook secret"
// @Param        payload          body    map[string]interface{}  true  "instrument, structure_type, price_level, direction, notes?, screenshot?"
// @Success      201  {object}  StructureResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /webhook/structure [post]
func (h *Handler) StructureWebhook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.structure-webhook")
	defer span.End()

	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	res, err := h.ingest.IngestStructure(ctx, payload)
	if err != nil {
		h.logger.Error("structure webhook failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StructureResponse{Structure: *res.Structure, AIAnalysis: res.AIAnalysis})
}

func (h *Handler) bindPayload(c *gin.Context) (service.Payload, bool) {
	var payload service.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return nil, false
	}
	if payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return nil, false
	}
	return payload, true
}
