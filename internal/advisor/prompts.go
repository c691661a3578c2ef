package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"trademind/internal/domain"
)

const (
	tradeSystemPrompt = "You are an expert futures trading coach specializing in ES and NQ futures. " +
		"You provide concise, actionable feedback on trades."
	structureSystemPrompt = "You are an expert in market structure analysis, specializing in Break of Structure (BOS) " +
		"and Change of Character (CHoCH) patterns in futures markets."
)

func TradePrompt(t domain.Trade) string {
	rr := "Not specified"
	if t.RiskReward > 0 {
		rr = strconv.FormatFloat(t.RiskReward, 'f', 2, 64)
	}

	var b strings.Builder
	b.WriteString("Analyze this futures trade and provide professional feedback:\n\n")
	fmt.Fprintf(&b, "Instrument: %s\n", t.Instrument)
	fmt.Fprintf(&b, "Direction: %s\n", t.Direction)
	fmt.Fprintf(&b, "Entry Price: %s\n", price(t.EntryPrice))
	fmt.Fprintf(&b, "Stop Loss: %s\n", price(t.StopLoss))
	fmt.Fprintf(&b, "Take Profit: %s\n", price(t.TakeProfit))
	fmt.Fprintf(&b, "Risk/Reward: %s\n\n", rr)
	fmt.Fprintf(&b, "Trader's Notes: %s\n\n", notesOrDefault(t.Notes))
	b.WriteString("Please provide feedback on:\n")
	b.WriteString("1. Risk management\n")
	b.WriteString("2. Trade setup and execution\n")
	b.WriteString("3. Areas for improvement\n")
	b.WriteString("4. Overall trade quality score (1-10)\n")
	return b.String()
}

func StructurePrompt(s domain.Structure) string {
	var b strings.Builder
	b.WriteString("Analyze this market structure formation:\n\n")
	fmt.Fprintf(&b, "Instrument: %s\n", s.Instrument)
	fmt.Fprintf(&b, "Type: %s\n", s.StructureType)
	fmt.Fprintf(&b, "Direction: %s\n", s.Direction)
	fmt.Fprintf(&b, "Price Level: %s\n\n", price(s.PriceLevel))
	fmt.Fprintf(&b, "Notes: %s\n\n", notesOrDefault(s.Notes))
	b.WriteString("Please provide analysis on:\n")
	b.WriteString("1. Significance of this structure\n")
	b.WriteString("2. Potential trading opportunities\n")
	b.WriteString("3. Key levels to watch\n")
	b.WriteString("4. Risk considerations\n")
	return b.String()
}

func price(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func notesOrDefault(notes *string) string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return "No notes provided"
	}
	return strings.TrimSpace(*notes)
}
