package domain

import (
	"math"
	"strings"
	"time"
)

type TradeDirection string

const (
	DirectionLong  TradeDirection = "LONG"
	DirectionShort TradeDirection = "SHORT"
)

func (d TradeDirection) IsValid() bool {
	return d == DirectionLong || d == DirectionShort
}

// Trade is a recorded execution. Pointer fields are nil when absent, which
// is distinct from an empty string.
type Trade struct {
	ID            ID             `json:"id"`
	Instrument    string         `json:"instrument"`
	Direction     TradeDirection `json:"direction"`
	EntryPrice    float64        `json:"entry_price"`
	StopLoss      float64        `json:"stop_loss"`
	TakeProfit    float64        `json:"take_profit"`
	RiskReward    float64        `json:"risk_reward"`
	ScreenshotURL *string        `json:"screenshot_url"`
	Notes         *string        `json:"notes"`
	AIFeedback    *string        `json:"ai_feedback"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewTrade is the insert payload. A nil RiskReward is filled in from the
// prices before the record reaches a backend.
type NewTrade struct {
	Instrument    string
	Direction     TradeDirection
	EntryPrice    float64
	StopLoss      float64
	TakeProfit    float64
	RiskReward    *float64
	ScreenshotURL *string
	Notes         *string
}

func (t NewTrade) Validate() error {
	if strings.TrimSpace(t.Instrument) == "" {
		return MissingField("instrument")
	}
	if t.Direction == "" {
		return MissingField("direction")
	}
	if !t.Direction.IsValid() {
		return &ValidationError{Field: "direction", Message: "Invalid direction. Must be LONG or SHORT"}
	}
	prices := []struct {
		field string
		value float64
	}{
		{"entry_price", t.EntryPrice},
		{"stop_loss", t.StopLoss},
		{"take_profit", t.TakeProfit},
	}
	for _, p := range prices {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return InvalidNumber(p.field)
		}
	}
	if t.RiskReward != nil {
		rr := *t.RiskReward
		if math.IsNaN(rr) || math.IsInf(rr, 0) {
			return InvalidNumber("risk_reward")
		}
		if rr < 0 {
			return &ValidationError{Field: "risk_reward", Message: "Invalid risk_reward. Must be non-negative"}
		}
	}
	return nil
}

// TradeUpdate touches only the mutable trade columns. Nil fields are left
// as they are.
type TradeUpdate struct {
	ScreenshotURL *string `json:"screenshot_url,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	AIFeedback    *string `json:"ai_feedback,omitempty"`
}

func (u TradeUpdate) IsEmpty() bool {
	return u.ScreenshotURL == nil && u.Notes == nil && u.AIFeedback == nil
}

// Apply copies the non-nil fields of u onto t.
func (u TradeUpdate) Apply(t *Trade) {
	if u.ScreenshotURL != nil {
		v := *u.ScreenshotURL
		t.ScreenshotURL = &v
	}
	if u.Notes != nil {
		v := *u.Notes
		t.Notes = &v
	}
	if u.AIFeedback != nil {
		v := *u.AIFeedback
		t.AIFeedback = &v
	}
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
