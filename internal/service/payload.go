package service

import (
	"strings"

	"trademind/internal/domain"

	"github.com/spf13/cast"
)

// Payload is a decoded webhook body. Values keep their JSON types; a JSON
// null is treated the same as an absent key.
type Payload map[string]any

func (p Payload) present(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

func (p Payload) firstMissing(keys ...string) error {
	for _, k := range keys {
		if !p.present(k) {
			return domain.MissingField(k)
		}
	}
	return nil
}

func (p Payload) str(key string) string {
	if !p.present(key) {
		return ""
	}
	return cast.ToString(p[key])
}

func (p Payload) optionalStr(key string) *string {
	if !p.present(key) {
		return nil
	}
	s := cast.ToString(p[key])
	return &s
}

// number accepts JSON numbers and numeric strings.
func (p Payload) number(key string) (float64, error) {
	v := p[key]
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, domain.InvalidNumber(key)
		}
		v = strings.TrimSpace(t)
	case bool, map[string]any, []any:
		return 0, domain.InvalidNumber(key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, domain.InvalidNumber(key)
	}
	return f, nil
}

// truthy mirrors the webhook contract for optional inputs: absent, null,
// empty and zero all count as not given.
func (p Payload) truthy(key string) bool {
	if !p.present(key) {
		return false
	}
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	default:
		f, err := cast.ToFloat64E(v)
		return err != nil || f != 0
	}
}

var tradeRequired = []string{"instrument", "direction", "entry_price", "stop_loss", "take_profit"}

// ParseTrade checks presence in the documented order, then the direction,
// then the numeric fields. The first failure wins.
func ParseTrade(p Payload) (domain.NewTrade, error) {
	var t domain.NewTrade
	if err := p.firstMissing(tradeRequired...); err != nil {
		return t, err
	}
	t.Instrument = p.str("instrument")
	t.Direction = domain.TradeDirection(p.str("direction"))
	if !t.Direction.IsValid() {
		return t, &domain.ValidationError{Field: "direction", Message: "Invalid direction. Must be LONG or SHORT"}
	}

	var err error
	if t.EntryPrice, err = p.number("entry_price"); err != nil {
		return t, err
	}
	if t.StopLoss, err = p.number("stop_loss"); err != nil {
		return t, err
	}
	if t.TakeProfit, err = p.number("take_profit"); err != nil {
		return t, err
	}
	if p.truthy("risk_reward") {
		rr, err := p.number("risk_reward")
		if err != nil {
			return t, err
		}
		t.RiskReward = &rr
	}
	t.Notes = p.optionalStr("notes")
	return t, t.Validate()
}

var structureRequired = []string{"instrument", "structure_type", "price_level", "direction"}

func ParseStructure(p Payload) (domain.NewStructure, error) {
	var s domain.NewStructure
	if err := p.firstMissing(structureRequired...); err != nil {
		return s, err
	}
	s.Instrument = p.str("instrument")
	s.StructureType = domain.StructureType(p.str("structure_type"))
	if !s.StructureType.IsValid() {
		return s, &domain.ValidationError{Field: "structure_type", Message: "Invalid structure_type. Must be BOS or CHoCH"}
	}
	s.Direction = domain.StructureDirection(p.str("direction"))
	if !s.Direction.IsValid() {
		return s, &domain.ValidationError{Field: "direction", Message: "Invalid direction. Must be BULLISH or BEARISH"}
	}

	var err error
	if s.PriceLevel, err = p.number("price_level"); err != nil {
		return s, err
	}
	s.Notes = p.optionalStr("notes")
	return s, s.Validate()
}
