package service

import (
	"context"
	"fmt"
	"strings"

	"trademind/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type TradeIngestResult struct {
	Trade *domain.Trade
	// AIFeedback is returned to the caller only; it is not written back.
	AIFeedback *string
	Screenshot Outcome
	Feedback   Outcome
}

type StructureIngestResult struct {
	Structure  *domain.Structure
	AIAnalysis *string
	Screenshot Outcome
	Analysis   Outcome
}

// IngestService turns webhook payloads into journal records. Screenshot
// and AI steps are best effort: their failures are logged and reported on
// the result, the record is still stored.
type IngestService struct {
	tracer  trace.Tracer
	journal *JournalService
	advisor FeedbackAdvisor
	logger  *zap.Logger
}

func NewIngestService(tracer trace.Tracer, journal *JournalService, advisor FeedbackAdvisor, logger *zap.Logger) *IngestService {
	return &IngestService{tracer: tracer, journal: journal, advisor: advisor, logger: logger}
}

func (s *IngestService) IngestTrade(ctx context.Context, p Payload) (*TradeIngestResult, error) {
	ctx, span := s.tracer.Start(ctx, "ingest-service.ingest-trade")
	defer span.End()

	nt, err := ParseTrade(p)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("instrument", nt.Instrument), attribute.String("direction", string(nt.Direction)))

	res := &TradeIngestResult{}
	nt.ScreenshotURL, res.Screenshot = s.screenshot(ctx, p)

	trade, err := s.journal.InsertTrade(ctx, nt)
	if err != nil {
		return nil, err
	}
	res.Trade = trade

	if hasNotes(trade.Notes) && s.advisor != nil {
		text, err := s.advisor.TradeFeedback(ctx, *trade)
		res.Feedback = attempted(err)
		if err != nil {
			s.logger.Error("ai feedback failed", zap.String("trade_id", trade.ID.String()), zap.Error(err))
		} else {
			res.AIFeedback = &text
		}
	}

	s.logger.Info("processed trade",
		zap.String("direction", string(trade.Direction)),
		zap.String("instrument", trade.Instrument),
		zap.String("trade_id", trade.ID.String()),
	)
	return res, nil
}

func (s *IngestService) IngestStructure(ctx context.Context, p Payload) (*StructureIngestResult, error) {
	ctx, span := s.tracer.Start(ctx, "ingest-service.ingest-structure")
	defer span.End()

	ns, err := ParseStructure(p)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("instrument", ns.Instrument), attribute.String("structure_type", string(ns.StructureType)))

	res := &StructureIngestResult{}
	ns.ScreenshotURL, res.Screenshot = s.screenshot(ctx, p)

	structure, err := s.journal.InsertStructure(ctx, ns)
	if err != nil {
		return nil, err
	}
	res.Structure = structure

	if hasNotes(structure.Notes) && s.advisor != nil {
		text, err := s.advisor.StructureAnalysis(ctx, *structure)
		res.Analysis = attempted(err)
		if err != nil {
			s.logger.Error("ai analysis failed", zap.String("structure_id", structure.ID.String()), zap.Error(err))
		} else {
			res.AIAnalysis = &text
		}
	}

	s.logger.Info("processed structure",
		zap.String("structure_type", string(structure.StructureType)),
		zap.String("instrument", structure.Instrument),
	)
	return res, nil
}

func (s *IngestService) screenshot(ctx context.Context, p Payload) (*string, Outcome) {
	if !p.truthy("screenshot") {
		return nil, Outcome{}
	}
	raw, ok := p["screenshot"].(string)
	if !ok {
		err := fmt.Errorf("screenshot must be a base64 string, got %T", p["screenshot"])
		s.logger.Error("screenshot rejected", zap.Error(err))
		return nil, attempted(err)
	}
	data, err := DecodeScreenshot(raw)
	if err != nil {
		err = fmt.Errorf("decode screenshot: %w", err)
		s.logger.Error("screenshot rejected", zap.Error(err))
		return nil, attempted(err)
	}
	url, err := s.journal.UploadScreenshot(ctx, data, "")
	if err != nil {
		s.logger.Error("screenshot upload failed", zap.Error(err))
		return nil, attempted(err)
	}
	s.logger.Info("screenshot saved", zap.String("url", url))
	return &url, attempted(nil)
}

func hasNotes(notes *string) bool {
	return notes != nil && strings.TrimSpace(*notes) != ""
}
