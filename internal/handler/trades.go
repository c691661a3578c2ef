package handler

import (
	"io"
	"net/http"

	"trademind/internal/domain"
	"trademind/internal/journal"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type patchTradeRequest struct {
	Notes         *string `json:"notes"`
	ScreenshotURL *string `json:"screenshot_url"`
}

// ListTrades godoc
// @Summary      List trades
// @Description  Returns trades newest first, narrowed by the optional filters
// @Tags         trades
// @Produce      json
// @Param        from         query  string  false  "First day, YYYY-MM-DD (inclusive)"
// @Param        to           query  string  false  "Last day, YYYY-MM-DD (inclusive)"
// @Param        instrument   query  string  false  "Instrument or ALL"
// @Param        direction    query  string  false  "ALL, LONG or SHORT"
// @Param        performance  query  string  false  "ALL, WINNERS or LOSERS"
// @Param        q            query  string  false  "Case-insensitive text in notes or AI feedback"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/trades [get]
func (h *Handler) ListTrades(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-trades")
	defer span.End()

	filter, err := journal.ParseFilter(c.Query, h.loc)
	if err != nil {
		writeError(c, err)
		return
	}

	trades, err := h.journal.ListTrades(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	visible := journal.Apply(journal.Normalize(trades), filter, h.loc)
	span.SetAttributes(attribute.Int("count", len(visible)))

	c.JSON(http.StatusOK, gin.H{"trades": visible, "count": len(visible)})
}

// TradeStats godoc
// @Summary      Journal statistics
// @Description  Summary tiles computed over every stored trade
// @Tags         trades
// @Produce      json
// @Success      200  {object}  journal.Stats
// @Failure      500  {object}  map[string]string
// @Router       /api/trades/stats [get]
func (h *Handler) TradeStats(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trade-stats")
	defer span.End()

	trades, err := h.journal.ListTrades(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, journal.ComputeStats(journal.Normalize(trades), h.now(), h.loc))
}

// UpdateTrade godoc
// @Summary      Update trade notes or screenshot
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "Trade ID"
// @Param        payload  body  patchTradeRequest  true  "Fields to set"
// @Success      200  {object}  domain.Trade
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/trades/{id} [patch]
func (h *Handler) UpdateTrade(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-trade")
	defer span.End()

	id := domain.ID(c.Param("id"))
	span.SetAttributes(attribute.String("trade_id", id.String()))

	var req patchTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	upd := domain.TradeUpdate{Notes: req.Notes, ScreenshotURL: req.ScreenshotURL}
	if err := h.journal.UpdateTrade(ctx, id, upd); err != nil {
		writeError(c, err)
		return
	}
	trade, err := h.journal.GetTrade(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trade)
}

// UploadScreenshot godoc
// @Summary      Attach a screenshot to a trade
// @Tags         trades
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Trade ID"
// @Param        file  formData  file    true  "PNG or JPEG image"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/trades/{id}/screenshot [post]
func (h *Handler) UploadScreenshot(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.upload-screenshot")
	defer span.End()

	id := domain.ID(c.Param("id"))
	span.SetAttributes(attribute.String("trade_id", id.String()))

	header, err := c.FormFile("file")
	if err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			writeError(c, err)
			return
		}
		writeError(c, domain.MissingField("file"))
		return
	}
	f, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, err)
		return
	}

	url, err := h.journal.AttachScreenshot(ctx, id, data, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"screenshot_url": url})
}

// AnalyzeTrade godoc
// @Summary      Generate and save AI feedback
// @Description  Asks the model about a stored trade and saves the answer as its ai_feedback
// @Tags         trades
// @Produce      json
// @Param        id  path  string  true  "Trade ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/trades/{id}/analyze [post]
func (h *Handler) AnalyzeTrade(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-trade")
	defer span.End()

	id := domain.ID(c.Param("id"))
	span.SetAttributes(attribute.String("trade_id", id.String()))

	feedback, err := h.journal.AnalyzeTrade(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ai_feedback": feedback})
}

// ListStructures godoc
// @Summary      List market structures
// @Tags         structures
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/structures [get]
func (h *Handler) ListStructures(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-structures")
	defer span.End()

	structures, err := h.journal.ListStructures(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	if structures == nil {
		structures = []domain.Structure{}
	}
	c.JSON(http.StatusOK, gin.H{"structures": structures, "count": len(structures)})
}
