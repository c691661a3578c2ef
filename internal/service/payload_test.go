package service

import (
	"encoding/json"
	"testing"

	"trademind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(t *testing.T, raw string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestParseTradeValid(t *testing.T) {
	nt, err := ParseTrade(payload(t, `{"instrument":"ES","direction":"LONG","entry_price":4500.25,
		"stop_loss":"4480.5","take_profit":4550.75,"notes":"retest entry"}`))
	require.NoError(t, err)
	assert.Equal(t, "ES", nt.Instrument)
	assert.Equal(t, 4480.5, nt.StopLoss)
	assert.Nil(t, nt.RiskReward)
	assert.Equal(t, "retest entry", domain.Deref(nt.Notes))
}

func TestParseTradeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"first missing field wins", `{"direction":"LONG"}`, "Missing required field: instrument"},
		{"null is missing", `{"instrument":"ES","direction":null,"entry_price":1,"stop_loss":1,"take_profit":1}`, "Missing required field: direction"},
		{"missing stop", `{"instrument":"ES","direction":"LONG","entry_price":1,"take_profit":1}`, "Missing required field: stop_loss"},
		{"presence before direction", `{"instrument":"ES","direction":"UP"}`, "Missing required field: entry_price"},
		{"bad direction", `{"instrument":"ES","direction":"long","entry_price":1,"stop_loss":1,"take_profit":1}`, "Invalid direction. Must be LONG or SHORT"},
		{"non numeric", `{"instrument":"ES","direction":"SHORT","entry_price":"abc","stop_loss":1,"take_profit":1}`, "Invalid entry_price. Must be a number"},
		{"empty string number", `{"instrument":"ES","direction":"SHORT","entry_price":1,"stop_loss":"","take_profit":1}`, "Invalid stop_loss. Must be a number"},
		{"bool number", `{"instrument":"ES","direction":"SHORT","entry_price":1,"stop_loss":2,"take_profit":true}`, "Invalid take_profit. Must be a number"},
		{"negative rr", `{"instrument":"ES","direction":"SHORT","entry_price":1,"stop_loss":2,"take_profit":0,"risk_reward":-2}`, "Invalid risk_reward. Must be non-negative"},
		{"bad rr", `{"instrument":"ES","direction":"SHORT","entry_price":1,"stop_loss":2,"take_profit":0,"risk_reward":"x"}`, "Invalid risk_reward. Must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrade(payload(t, tt.body))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.Message)
		})
	}
}

func TestParseTradeRiskRewardFalsyIsComputedLater(t *testing.T) {
	for _, rr := range []string{`0`, `null`, `""`} {
		nt, err := ParseTrade(payload(t, `{"instrument":"ES","direction":"LONG","entry_price":1,
			"stop_loss":0,"take_profit":3,"risk_reward":`+rr+`}`))
		require.NoError(t, err)
		assert.Nil(t, nt.RiskReward, rr)
	}

	nt, err := ParseTrade(payload(t, `{"instrument":"ES","direction":"LONG","entry_price":1,
		"stop_loss":0,"take_profit":3,"risk_reward":"1.75"}`))
	require.NoError(t, err)
	require.NotNil(t, nt.RiskReward)
	assert.Equal(t, 1.75, *nt.RiskReward)
}

func TestParseStructure(t *testing.T) {
	ns, err := ParseStructure(payload(t, `{"instrument":"NQ","structure_type":"CHoCH","price_level":15000.5,"direction":"BEARISH"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StructureCHoCH, ns.StructureType)
	assert.Nil(t, ns.Notes)

	tests := map[string]string{
		`{"instrument":"NQ","structure_type":"BOS","direction":"BULLISH"}`:                      "Missing required field: price_level",
		`{"instrument":"NQ","structure_type":"FVG","price_level":1,"direction":"BULLISH"}`:      "Invalid structure_type. Must be BOS or CHoCH",
		`{"instrument":"NQ","structure_type":"choch","price_level":1,"direction":"BULLISH"}`:    "Invalid structure_type. Must be BOS or CHoCH",
		`{"instrument":"NQ","structure_type":"BOS","price_level":1,"direction":"LONG"}`:         "Invalid direction. Must be BULLISH or BEARISH",
		`{"instrument":"NQ","structure_type":"BOS","price_level":"high","direction":"BULLISH"}`: "Invalid price_level. Must be a number",
	}
	for body, want := range tests {
		_, err := ParseStructure(payload(t, body))
		assert.EqualError(t, err, want, body)
	}
}
