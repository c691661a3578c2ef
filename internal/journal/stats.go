package journal

import (
	"sort"
	"time"

	"trademind/internal/domain"
	"trademind/internal/metrics"
)

// Stats feeds the summary tiles. It is computed over the whole loaded set,
// not the filtered view.
type Stats struct {
	Count       int           `json:"count"`
	TradesToday int           `json:"trades_today"`
	LongPct     float64       `json:"long_pct"`
	ShortPct    float64       `json:"short_pct"`
	Dominant    string        `json:"dominant"`
	AvgRR       float64       `json:"avg_risk_reward"`
	AvgRRTrend  metrics.Trend `json:"avg_risk_reward_trend"`
	TargetRR    float64       `json:"target_risk_reward"`
	WinRate     float64       `json:"win_rate"`
}

// Normalize returns a copy of trades with risk/reward recomputed from the
// stored prices, so every reader judges winners the same way regardless of
// what a webhook sender supplied.
func Normalize(trades []domain.Trade) []domain.Trade {
	if trades == nil {
		return nil
	}
	out := make([]domain.Trade, len(trades))
	for i, t := range trades {
		t.RiskReward = metrics.RiskRewardOf(t)
		out[i] = t
	}
	return out
}

func ComputeStats(trades []domain.Trade, now time.Time, loc *time.Location) Stats {
	today := Day(now, loc)
	s := Stats{
		Count:    len(trades),
		LongPct:  metrics.LongShortRatio(trades),
		AvgRR:    metrics.AverageRiskReward(trades),
		WinRate:  metrics.WinRate(trades),
		TargetRR: metrics.TargetRiskReward,
	}
	if s.Count > 0 {
		s.ShortPct = 100 - s.LongPct
	}
	if s.LongPct > 50 {
		s.Dominant = "Long dominant"
	} else {
		s.Dominant = "Short dominant"
	}
	s.AvgRRTrend = metrics.TrendIndicator(s.AvgRR, metrics.TargetRiskReward)
	for _, t := range trades {
		if Day(t.CreatedAt, loc).Equal(today) {
			s.TradesToday++
		}
	}
	return s
}

// Instruments lists the distinct instruments, sorted.
func Instruments(trades []domain.Trade) []string {
	seen := make(map[string]struct{}, len(trades))
	var out []string
	for _, t := range trades {
		if _, ok := seen[t.Instrument]; ok {
			continue
		}
		seen[t.Instrument] = struct{}{}
		out = append(out, t.Instrument)
	}
	sort.Strings(out)
	return out
}
