package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type TradeRepository interface {
	InsertTrade(ctx context.Context, t domain.NewTrade) (*domain.Trade, error)
	ListTrades(ctx context.Context) ([]domain.Trade, error)
	SampleTrades(ctx context.Context, limit int) ([]domain.Trade, error)
	GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error)
	UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error
}

type StructureRepository interface {
	InsertStructure(ctx context.Context, s domain.NewStructure) (*domain.Structure, error)
	ListStructures(ctx context.Context) ([]domain.Structure, error)
}

type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}

// Backend is everything a journal store provides. Implemented by the
// supabase client and the postgres and sqlite repositories.
type Backend interface {
	TradeRepository
	StructureRepository
	SchemaManager
}

type ScreenshotBucket interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	PublicURL(name string) string
}

type FeedbackAdvisor interface {
	TradeFeedback(ctx context.Context, t domain.Trade) (string, error)
	StructureAnalysis(ctx context.Context, s domain.Structure) (string, error)
}

// JournalService is the trade store as the rest of the program sees it:
// validation, risk/reward defaulting and screenshot naming on top of a
// Backend.
type JournalService struct {
	tracer  trace.Tracer
	backend Backend
	bucket  ScreenshotBucket
	advisor FeedbackAdvisor
	logger  *zap.Logger
	now     func() time.Time
	newName func() string
}

func NewJournalService(
	tracer trace.Tracer,
	backend Backend,
	bucket ScreenshotBucket,
	advisor FeedbackAdvisor,
	logger *zap.Logger,
) *JournalService {
	return &JournalService{
		tracer:  tracer,
		backend: backend,
		bucket:  bucket,
		advisor: advisor,
		logger:  logger,
		now:     time.Now,
		newName: func() string { return uuid.New().String() },
	}
}

// InsertTrade validates t and stores it. A nil RiskReward is derived from
// the prices and rounded to two decimals.
func (s *JournalService) InsertTrade(ctx context.Context, t domain.NewTrade) (*domain.Trade, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.insert-trade")
	defer span.End()

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.RiskReward == nil {
		rr := metrics.Round2(metrics.RiskReward(t.Direction, t.EntryPrice, t.StopLoss, t.TakeProfit))
		t.RiskReward = &rr
	}
	trade, err := s.backend.InsertTrade(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("insert trade: %w", err)
	}
	return trade, nil
}

func (s *JournalService) InsertStructure(ctx context.Context, in domain.NewStructure) (*domain.Structure, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.insert-structure")
	defer span.End()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	out, err := s.backend.InsertStructure(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("insert structure: %w", err)
	}
	return out, nil
}

// ListTrades returns every trade, newest first.
func (s *JournalService) ListTrades(ctx context.Context) ([]domain.Trade, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.list-trades")
	defer span.End()

	trades, err := s.backend.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

func (s *JournalService) ListStructures(ctx context.Context) ([]domain.Structure, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.list-structures")
	defer span.End()

	out, err := s.backend.ListStructures(ctx)
	if err != nil {
		return nil, fmt.Errorf("list structures: %w", err)
	}
	return out, nil
}

func (s *JournalService) GetTrade(ctx context.Context, id domain.ID) (*domain.Trade, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.get-trade")
	defer span.End()

	if strings.TrimSpace(id.String()) == "" {
		return nil, domain.MissingField("id")
	}
	return s.backend.GetTrade(ctx, id)
}

// UpdateTrade applies the non-nil fields of upd. Last write wins.
func (s *JournalService) UpdateTrade(ctx context.Context, id domain.ID, upd domain.TradeUpdate) error {
	ctx, span := s.tracer.Start(ctx, "journal-service.update-trade")
	defer span.End()

	if strings.TrimSpace(id.String()) == "" {
		return domain.MissingField("id")
	}
	if upd.IsEmpty() {
		return &domain.ValidationError{Field: "update", Message: "No fields to update"}
	}
	if err := s.backend.UpdateTrade(ctx, id, upd); err != nil {
		return fmt.Errorf("update trade %s: %w", id, err)
	}
	return nil
}

// UploadScreenshot stores an image and returns its public URL. The object
// name is <UTC YYYYMMDD_HHMMSS>_<uuid>.<ext>; an empty contentType is
// sniffed from the bytes.
func (s *JournalService) UploadScreenshot(ctx context.Context, data []byte, contentType string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.upload-screenshot")
	defer span.End()

	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty screenshot", domain.ErrStorage)
	}
	detected := mimetype.Detect(data)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detected.String()
	}
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", &domain.ValidationError{
			Field:   "screenshot",
			Message: fmt.Sprintf("Invalid screenshot. Must be an image, got %s", detected.String()),
		}
	}

	name := s.ObjectName(detected.Extension())
	if err := s.bucket.Upload(ctx, name, data, contentType); err != nil {
		if errors.Is(err, domain.ErrStorage) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return s.bucket.PublicURL(name), nil
}

// ObjectName builds a collision-free bucket object name. ext includes the
// leading dot.
func (s *JournalService) ObjectName(ext string) string {
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s_%s%s", s.now().UTC().Format("20060102_150405"), s.newName(), ext)
}

// AttachScreenshot uploads data and points the trade at it. The trade is
// looked up first so an unknown id never leaves an object in the bucket.
func (s *JournalService) AttachScreenshot(ctx context.Context, id domain.ID, data []byte, contentType string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.attach-screenshot")
	defer span.End()

	if _, err := s.GetTrade(ctx, id); err != nil {
		return "", err
	}
	url, err := s.UploadScreenshot(ctx, data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.UpdateTrade(ctx, id, domain.TradeUpdate{ScreenshotURL: &url}); err != nil {
		return "", err
	}
	return url, nil
}

// AnalyzeTrade asks the advisor about a stored trade and persists the
// answer as its ai_feedback.
func (s *JournalService) AnalyzeTrade(ctx context.Context, id domain.ID) (string, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.analyze-trade")
	defer span.End()

	if s.advisor == nil {
		return "", fmt.Errorf("analyze trade: %w: advisor not configured", domain.ErrAIService)
	}
	trade, err := s.GetTrade(ctx, id)
	if err != nil {
		return "", err
	}
	feedback, err := s.advisor.TradeFeedback(ctx, *trade)
	if err != nil {
		return "", err
	}
	if err := s.UpdateTrade(ctx, id, domain.TradeUpdate{AIFeedback: &feedback}); err != nil {
		return "", fmt.Errorf("save feedback: %w", err)
	}
	s.logger.Info("saved ai feedback", zap.String("trade_id", id.String()))
	return feedback, nil
}

// Probe reads at most one trade to prove the store is reachable.
func (s *JournalService) Probe(ctx context.Context) ([]domain.Trade, error) {
	ctx, span := s.tracer.Start(ctx, "journal-service.probe")
	defer span.End()

	return s.backend.SampleTrades(ctx, 1)
}

func (s *JournalService) EnsureSchema(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "journal-service.ensure-schema")
	defer span.End()

	return s.backend.EnsureSchema(ctx)
}
