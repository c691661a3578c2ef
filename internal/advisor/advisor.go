// Package advisor asks an OpenAI-compatible chat model for coaching
// feedback on journal entries.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trademind/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second

	maxTokens   = 500
	temperature = 0.7
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// AIServiceError reports a failed completion. It matches
// domain.ErrAIService under errors.Is.
type AIServiceError struct {
	Op  string
	Err error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AIServiceError) Unwrap() []error {
	return []error{domain.ErrAIService, e.Err}
}

type Advisor struct {
	client openai.Client
	model  string
	tracer trace.Tracer
	logger *zap.Logger
}

func New(cfg Config, tracer trace.Tracer, logger *zap.Logger) *Advisor {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Advisor{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		tracer: tracer,
		logger: logger,
	}
}

// TradeFeedback returns coaching feedback for a recorded trade. It is a
// single attempt; the caller decides what a failure means.
func (a *Advisor) TradeFeedback(ctx context.Context, t domain.Trade) (string, error) {
	ctx, span := a.tracer.Start(ctx, "advisor.trade-feedback")
	defer span.End()
	span.SetAttributes(attribute.String("instrument", t.Instrument))

	text, err := a.complete(ctx, tradeSystemPrompt, TradePrompt(t))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "trade feedback failed")
		a.logger.Warn("trade feedback failed", zap.String("instrument", t.Instrument), zap.Error(err))
		return "", &AIServiceError{Op: "trade feedback", Err: err}
	}
	a.logger.Info("generated trade feedback", zap.String("instrument", t.Instrument))
	return text, nil
}

func (a *Advisor) StructureAnalysis(ctx context.Context, s domain.Structure) (string, error) {
	ctx, span := a.tracer.Start(ctx, "advisor.structure-analysis")
	defer span.End()
	span.SetAttributes(attribute.String("instrument", s.Instrument))

	text, err := a.complete(ctx, structureSystemPrompt, StructurePrompt(s))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "structure analysis failed")
		a.logger.Warn("structure analysis failed", zap.String("instrument", s.Instrument), zap.Error(err))
		return "", &AIServiceError{Op: "structure analysis", Err: err}
	}
	a.logger.Info("generated structure analysis", zap.String("instrument", s.Instrument))
	return text, nil
}

func (a *Advisor) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("completion returned empty content")
	}
	return text, nil
}
