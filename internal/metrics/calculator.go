// Package metrics derives trade statistics from stored prices. Every
// function is pure and never returns NaN or Inf.
package metrics

import (
	"math"

	"trademind/internal/domain"
)

// TargetRiskReward is the average R:R the dashboard measures itself against.
const TargetRiskReward = 2.0

type Trend string

const (
	TrendAtOrAbove Trend = "AT_OR_ABOVE"
	TrendBelow     Trend = "BELOW"
)

type Severity string

const (
	SeverityGood Severity = "GOOD"
	SeverityOK   Severity = "OK"
	SeverityPoor Severity = "POOR"
)

// RiskReward returns reward over risk for a planned trade. Risk is the
// distance from entry to stop. It is 0 when risk is 0 or any input is not
// finite.
func RiskReward(direction domain.TradeDirection, entry, stop, target float64) float64 {
	if !finite(entry) || !finite(stop) || !finite(target) {
		return 0
	}
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	var reward float64
	if direction == domain.DirectionLong {
		reward = math.Abs(target - entry)
	} else {
		reward = math.Abs(entry - target)
	}
	rr := reward / risk
	if !finite(rr) {
		return 0
	}
	return rr
}

func RiskRewardOf(t domain.Trade) float64 {
	return RiskReward(t.Direction, t.EntryPrice, t.StopLoss, t.TakeProfit)
}

// WinRate is the percentage of trades with risk_reward >= 1.
func WinRate(trades []domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if IsWinner(t) {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// IsWinner uses R:R as the proxy for a winning trade; there is no exit price.
func IsWinner(t domain.Trade) bool {
	return t.RiskReward >= 1
}

// LongShortRatio is the percentage of LONG trades.
func LongShortRatio(trades []domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	longs := 0
	for _, t := range trades {
		if t.Direction == domain.DirectionLong {
			longs++
		}
	}
	return float64(longs) / float64(len(trades)) * 100
}

func AverageRiskReward(trades []domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, t := range trades {
		if !finite(t.RiskReward) {
			continue
		}
		sum += t.RiskReward
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func TrendIndicator(current, target float64) Trend {
	if current >= target {
		return TrendAtOrAbove
	}
	return TrendBelow
}

func RRSeverity(rr float64) Severity {
	switch {
	case rr >= 2:
		return SeverityGood
	case rr >= 1:
		return SeverityOK
	default:
		return SeverityPoor
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return math.Round(v*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
