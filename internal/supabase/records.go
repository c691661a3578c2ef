package supabase

import (
	"fmt"
	"time"

	"trademind/internal/domain"
)

type tradeRecord struct {
	ID            domain.ID `json:"id"`
	Instrument    string    `json:"instrument"`
	Direction     string    `json:"direction"`
	EntryPrice    float64   `json:"entry_price"`
	StopLoss      float64   `json:"stop_loss"`
	TakeProfit    float64   `json:"take_profit"`
	RiskReward    *float64  `json:"risk_reward"`
	ScreenshotURL *string   `json:"screenshot_url"`
	Notes         *string   `json:"notes"`
	AIFeedback    *string   `json:"ai_feedback"`
	CreatedAt     string    `json:"created_at"`
}

func (r tradeRecord) toDomain() (domain.Trade, error) {
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade %s: %w", r.ID, err)
	}
	t := domain.Trade{
		ID:            r.ID,
		Instrument:    r.Instrument,
		Direction:     domain.TradeDirection(r.Direction),
		EntryPrice:    r.EntryPrice,
		StopLoss:      r.StopLoss,
		TakeProfit:    r.TakeProfit,
		ScreenshotURL: r.ScreenshotURL,
		Notes:         r.Notes,
		AIFeedback:    r.AIFeedback,
		CreatedAt:     created,
	}
	if r.RiskReward != nil {
		t.RiskReward = *r.RiskReward
	}
	return t, nil
}

type tradeInsert struct {
	Instrument    string  `json:"instrument"`
	Direction     string  `json:"direction"`
	EntryPrice    float64 `json:"entry_price"`
	StopLoss      float64 `json:"stop_loss"`
	TakeProfit    float64 `json:"take_profit"`
	RiskReward    float64 `json:"risk_reward"`
	ScreenshotURL *string `json:"screenshot_url"`
	Notes         *string `json:"notes"`
}

type structureRecord struct {
	ID            domain.ID `json:"id"`
	Instrument    string    `json:"instrument"`
	StructureType string    `json:"structure_type"`
	Direction     string    `json:"direction"`
	PriceLevel    float64   `json:"price_level"`
	ScreenshotURL *string   `json:"screenshot_url"`
	Notes         *string   `json:"notes"`
	CreatedAt     string    `json:"created_at"`
}

func (r structureRecord) toDomain() (domain.Structure, error) {
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return domain.Structure{}, fmt.Errorf("structure %s: %w", r.ID, err)
	}
	return domain.Structure{
		ID:            r.ID,
		Instrument:    r.Instrument,
		StructureType: domain.StructureType(r.StructureType),
		Direction:     domain.StructureDirection(r.Direction),
		PriceLevel:    r.PriceLevel,
		ScreenshotURL: r.ScreenshotURL,
		Notes:         r.Notes,
		CreatedAt:     created,
	}, nil
}

type structureInsert struct {
	Instrument    string  `json:"instrument"`
	StructureType string  `json:"structure_type"`
	Direction     string  `json:"direction"`
	PriceLevel    float64 `json:"price_level"`
	ScreenshotURL *string `json:"screenshot_url"`
	Notes         *string `json:"notes"`
}

// timestamptz columns carry an offset, plain timestamp columns do not and
// are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
