package handler

import (
	"time"

	"trademind/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Handler struct {
	tracer  trace.Tracer
	ingest  *service.IngestService
	journal *service.JournalService
	logger  *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

func New(
	tracer trace.Tracer,
	ingest *service.IngestService,
	journal *service.JournalService,
	logger *zap.Logger,
	loc *time.Location,
) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		tracer:  tracer,
		ingest:  ingest,
		journal: journal,
		logger:  logger,
		loc:     loc,
		now:     time.Now,
	}
}

// WebhookOptions guards the inbound webhook and /api routes. APIToken
// falls back to Secret when unset.
type WebhookOptions struct {
	Secret       string
	APIToken     string
	RatePerMin   int
	MaxBodyBytes int64
}

func (o WebhookOptions) apiToken() string {
	if o.APIToken != "" {
		return o.APIToken
	}
	return o.Secret
}

func (h *Handler) RegisterRoutes(r *gin.Engine, opts WebhookOptions) {
	r.GET("/health", h.Health)
	r.GET("/test-supabase", h.TestSupabase)
	r.GET("/test-tables", h.TestTables)

	webhooks := r.Group("/webhook",
		BodyLimit(opts.MaxBodyBytes),
		RateLimit(opts.RatePerMin),
		WebhookAuth(opts.Secret),
	)
	webhooks.POST("/trade", h.TradeWebhook)
	webhooks.POST("/structure", h.StructureWebhook)

	api := r.Group("/api",
		RateLimit(opts.RatePerMin),
		APIAuth(opts.apiToken()),
	)
	api.GET("/trades", h.ListTrades)
	api.GET("/trades/stats", h.TradeStats)
	api.PATCH("/trades/:id", h.UpdateTrade)
	api.POST("/trades/:id/screenshot", BodyLimit(opts.MaxBodyBytes), h.UploadScreenshot)
	api.POST("/trades/:id/analyze", h.AnalyzeTrade)
	api.GET("/structures", h.ListStructures)
}
