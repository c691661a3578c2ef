package journal

import (
	"fmt"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/metrics"
)

const (
	BadgeFeedback = "🤖"
	BadgeWinner   = "✨"
)

// Title renders the one-line trade summary shown in lists and exports.
func Title(t domain.Trade, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%s - %s (%s) - R:R %.2f",
		t.CreatedAt.In(loc).Format("02/01/2006 15:04"),
		t.Instrument, t.Direction, t.RiskReward)
}

// Badges marks trades with AI feedback and winners.
func Badges(t domain.Trade) []string {
	var out []string
	if strings.TrimSpace(domain.Deref(t.AIFeedback)) != "" {
		out = append(out, BadgeFeedback)
	}
	if metrics.IsWinner(t) {
		out = append(out, BadgeWinner)
	}
	return out
}
