package advisor

import (
	"testing"

	"trademind/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTradePromptDefaults(t *testing.T) {
	p := TradePrompt(domain.Trade{
		Instrument: "NQ", Direction: domain.DirectionShort,
		EntryPrice: 15000, StopLoss: 15050, TakeProfit: 14900,
	})
	assert.Contains(t, p, "Direction: SHORT")
	assert.Contains(t, p, "Risk/Reward: Not specified")
	assert.Contains(t, p, "Trader's Notes: No notes provided")
	assert.Contains(t, p, "4. Overall trade quality score (1-10)")
}

func TestTradePromptWithValues(t *testing.T) {
	p := TradePrompt(sampleTrade())
	assert.Contains(t, p, "Risk/Reward: 2.56")
	assert.Contains(t, p, "Stop Loss: 4480.5")
}

func TestStructurePrompt(t *testing.T) {
	p := StructurePrompt(domain.Structure{
		Instrument: "ES", StructureType: domain.StructureBOS, Direction: domain.StructureBullish,
		PriceLevel: 4510.25, Notes: domain.StringPtr("  "),
	})
	assert.Contains(t, p, "Type: BOS")
	assert.Contains(t, p, "Price Level: 4510.25")
	assert.Contains(t, p, "Notes: No notes provided")
	assert.Contains(t, p, "3. Key levels to watch")
}
