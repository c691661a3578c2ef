package tui

import (
	"fmt"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"
	"trademind/internal/metrics"

	"github.com/charmbracelet/lipgloss"
)

// RRStyle picks the colour for a risk/reward ratio.
func RRStyle(rr float64) lipgloss.Style {
	switch metrics.RRSeverity(rr) {
	case metrics.SeverityGood:
		return RRGoodStyle
	case metrics.SeverityOK:
		return RROkStyle
	default:
		return RRPoorStyle
	}
}

func directionStyle(dir string) lipgloss.Style {
	if strings.EqualFold(dir, string(domain.DirectionShort)) || strings.EqualFold(dir, string(domain.StructureBearish)) {
		return DirectionShortStyle
	}
	return DirectionLongStyle
}

// FormatTrade renders a trade as a single list line with its badges.
func FormatTrade(t domain.Trade, loc *time.Location) string {
	line := RRStyle(t.RiskReward).Render(journal.Title(t, loc))
	if badges := journal.Badges(t); len(badges) > 0 {
		line += " " + strings.Join(badges, " ")
	}
	return line
}

// FormatStructure renders a structure as a single line.
func FormatStructure(s domain.Structure, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%-16s %-6s %-6s %s %12s",
		s.CreatedAt.In(loc).Format("02/01/2006 15:04"),
		s.Instrument,
		s.StructureType,
		directionStyle(string(s.Direction)).Render(fmt.Sprintf("%-8s", s.Direction)),
		fmt.Sprintf("%.2f", s.PriceLevel),
	)
}

// RenderTile renders one stats tile.
func RenderTile(label, value, sub string) string {
	body := TileLabelStyle.Render(label) + "\n" + TileValueStyle.Render(value)
	if sub != "" {
		body += "\n" + sub
	}
	return TileStyle.Render(body)
}

// RenderStats renders the stats tile row.
func RenderStats(s journal.Stats) string {
	trend := TrendDownStyle.Render(fmt.Sprintf("▼ target %.2f", s.TargetRR))
	if s.AvgRRTrend == metrics.TrendAtOrAbove {
		trend = TrendUpStyle.Render(fmt.Sprintf("▲ target %.2f", s.TargetRR))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderTile("Total trades", fmt.Sprintf("%d", s.Count), SubtextStyle.Render(fmt.Sprintf("%d today", s.TradesToday))),
		RenderTile("Long / Short", fmt.Sprintf("%.0f%% / %.0f%%", s.LongPct, s.ShortPct), SubtextStyle.Render(s.Dominant)),
		RenderTile("Avg R:R", fmt.Sprintf("%.2f", s.AvgRR), trend),
		RenderTile("Win rate", fmt.Sprintf("%.1f%%", s.WinRate), SubtextStyle.Render("R:R ≥ 1")),
	)
}

// RenderChip renders a filter chip; chips that narrow the list are highlighted.
func RenderChip(label, value string, active bool) string {
	text := label + ": " + value
	if active {
		return ActiveChipStyle.Render(text)
	}
	return ChipStyle.Render(text)
}

// RenderTradeDetail renders the expanded view of a trade.
func RenderTradeDetail(t domain.Trade) string {
	lines := []string{
		fmt.Sprintf("Entry %.2f   Stop %.2f   Target %.2f   %s",
			t.EntryPrice, t.StopLoss, t.TakeProfit,
			RRStyle(t.RiskReward).Render(fmt.Sprintf("R:R %.2f", t.RiskReward))),
		"Screenshot: " + orDash(t.ScreenshotURL),
		"Notes: " + orDash(t.Notes),
	}
	if fb := strings.TrimSpace(domain.Deref(t.AIFeedback)); fb != "" {
		lines = append(lines, "AI feedback "+journal.BadgeFeedback, FeedbackStyle.Render(fb))
	}
	return strings.Join(lines, "\n")
}

func orDash(s *string) string {
	if v := strings.TrimSpace(domain.Deref(s)); v != "" {
		return v
	}
	return "-"
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "any"
	}
	return t.Format("2006-01-02")
}
