package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrade() NewTrade {
	return NewTrade{
		Instrument: "ES",
		Direction:  DirectionLong,
		EntryPrice: 4500,
		StopLoss:   4480,
		TakeProfit: 4550,
	}
}

func TestNewTradeValidate(t *testing.T) {
	require.NoError(t, validTrade().Validate())

	tests := []struct {
		name    string
		mutate  func(*NewTrade)
		field   string
		message string
	}{
		{"missing instrument", func(t *NewTrade) { t.Instrument = " " }, "instrument", "Missing required field: instrument"},
		{"missing direction", func(t *NewTrade) { t.Direction = "" }, "direction", "Missing required field: direction"},
		{"bad direction", func(t *NewTrade) { t.Direction = "long" }, "direction", "Invalid direction. Must be LONG or SHORT"},
		{"nan entry", func(t *NewTrade) { t.EntryPrice = math.NaN() }, "entry_price", "Invalid entry_price. Must be a number"},
		{"inf target", func(t *NewTrade) { t.TakeProfit = math.Inf(1) }, "take_profit", "Invalid take_profit. Must be a number"},
		{"negative rr", func(t *NewTrade) { rr := -1.0; t.RiskReward = &rr }, "risk_reward", "Invalid risk_reward. Must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt := validTrade()
			tt.mutate(&nt)
			err := nt.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Error())
		})
	}
}

func TestNewStructureValidate(t *testing.T) {
	ok := NewStructure{Instrument: "NQ", StructureType: StructureCHoCH, Direction: StructureBearish, PriceLevel: 15000}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.StructureType = "FVG"
	assert.EqualError(t, bad.Validate(), "Invalid structure_type. Must be BOS or CHoCH")

	bad = ok
	bad.Direction = "UP"
	assert.EqualError(t, bad.Validate(), "Invalid direction. Must be BULLISH or BEARISH")

	bad = ok
	bad.StructureType = ""
	assert.EqualError(t, bad.Validate(), "Missing required field: structure_type")
}

func TestTradeUpdateApply(t *testing.T) {
	tr := Trade{Notes: StringPtr("old")}
	upd := TradeUpdate{AIFeedback: StringPtr("good trade")}
	assert.False(t, upd.IsEmpty())
	upd.Apply(&tr)

	assert.Equal(t, "old", Deref(tr.Notes))
	assert.Equal(t, "good trade", Deref(tr.AIFeedback))
	assert.Nil(t, tr.ScreenshotURL)
	assert.True(t, TradeUpdate{}.IsEmpty())
}

func TestIDUnmarshal(t *testing.T) {
	var out struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"9f1c","b":42,"c":null}`), &out))
	assert.Equal(t, ID("9f1c"), out.A)
	assert.Equal(t, ID("42"), out.B)
	assert.Equal(t, ID(""), out.C)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestIsValidation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", MissingField("notes"))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsValidation(errors.New("boom")))
	assert.False(t, IsValidation(fmt.Errorf("x: %w", ErrNotFound)))
}
