package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"trademind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type ingestFixture struct {
	backend *stubBackend
	bucket  *stubBucket
	advisor *stubAdvisor
	logs    *observer.ObservedLogs
	svc     *IngestService
}

func newIngest(t *testing.T) *ingestFixture {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	f := &ingestFixture{
		backend: newStubBackend(),
		bucket:  &stubBucket{},
		advisor: &stubAdvisor{text: "Nice R:R."},
		logs:    logs,
	}
	journal := newJournal(f.backend, f.bucket, f.advisor)
	journal.logger = logger
	f.svc = NewIngestService(testTracer, journal, f.advisor, logger)
	return f
}

func tradePayload(extra map[string]any) Payload {
	p := Payload{
		"instrument": "ES", "direction": "LONG",
		"entry_price": 4500.0, "stop_loss": 4480.0, "take_profit": 4550.0,
	}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

func TestIngestTradeWithoutNotesSkipsAdvisor(t *testing.T) {
	f := newIngest(t)

	res, err := f.svc.IngestTrade(context.Background(), tradePayload(nil))
	require.NoError(t, err)
	assert.Equal(t, 2.5, res.Trade.RiskReward)
	assert.Nil(t, res.AIFeedback)
	assert.False(t, res.Feedback.Attempted)
	assert.False(t, res.Screenshot.Attempted)
	assert.Empty(t, f.advisor.tradeCalls)
}

func TestIngestTradeWithNotesReturnsFeedbackWithoutPersisting(t *testing.T) {
	f := newIngest(t)

	res, err := f.svc.IngestTrade(context.Background(), tradePayload(map[string]any{"notes": "chased the entry"}))
	require.NoError(t, err)
	require.NotNil(t, res.AIFeedback)
	assert.Equal(t, "Nice R:R.", *res.AIFeedback)
	assert.True(t, res.Feedback.Succeeded())

	require.Len(t, f.advisor.tradeCalls, 1)
	assert.Equal(t, 2.5, f.advisor.tradeCalls[0].RiskReward)
	assert.Empty(t, f.backend.updates)
	assert.Nil(t, f.backend.trades[0].AIFeedback)
}

func TestIngestTradeAdvisorFailureIsDegraded(t *testing.T) {
	f := newIngest(t)
	f.advisor.err = errors.Join(domain.ErrAIService, errors.New("rate limited"))

	res, err := f.svc.IngestTrade(context.Background(), tradePayload(map[string]any{"notes": "x"}))
	require.NoError(t, err)
	assert.NotNil(t, res.Trade)
	assert.Nil(t, res.AIFeedback)
	assert.True(t, res.Feedback.Degraded())
	assert.ErrorIs(t, res.Feedback.Err, domain.ErrAIService)
	assert.Equal(t, 1, f.logs.FilterMessage("ai feedback failed").Len())
}

func TestIngestTradeScreenshotUploaded(t *testing.T) {
	f := newIngest(t)
	shot := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)

	res, err := f.svc.IngestTrade(context.Background(), tradePayload(map[string]any{"screenshot": shot}))
	require.NoError(t, err)
	assert.True(t, res.Screenshot.Succeeded())
	require.Len(t, f.bucket.uploads, 1)
	assert.Equal(t, "https://cdn.test/screenshots/"+f.bucket.uploads[0].name, domain.Deref(res.Trade.ScreenshotURL))
}

func TestIngestTradeBadScreenshotStillInserts(t *testing.T) {
	f := newIngest(t)

	res, err := f.svc.IngestTrade(context.Background(), tradePayload(map[string]any{"screenshot": "%%%"}))
	require.NoError(t, err)
	assert.True(t, res.Screenshot.Degraded())
	assert.Nil(t, res.Trade.ScreenshotURL)
	assert.Len(t, f.backend.inserted, 1)
	assert.Equal(t, 1, f.logs.FilterMessage("screenshot rejected").Len())
}

func TestIngestTradeUploadFailureStillInserts(t *testing.T) {
	f := newIngest(t)
	f.bucket.err = errors.New("bucket not found")
	shot := base64.StdEncoding.EncodeToString(pngHeader)

	res, err := f.svc.IngestTrade(context.Background(), tradePayload(map[string]any{"screenshot": shot}))
	require.NoError(t, err)
	assert.ErrorIs(t, res.Screenshot.Err, domain.ErrStorage)
	assert.Nil(t, res.Trade.ScreenshotURL)
	assert.Equal(t, 1, f.logs.FilterMessage("screenshot upload failed").Len())
}

func TestIngestTradeValidationStopsEverything(t *testing.T) {
	f := newIngest(t)

	_, err := f.svc.IngestTrade(context.Background(), Payload{"instrument": "ES"})
	assert.EqualError(t, err, "Missing required field: direction")
	assert.Empty(t, f.backend.inserted)
	assert.Empty(t, f.bucket.uploads)
}

func TestIngestTradeStoreFailurePropagates(t *testing.T) {
	f := newIngest(t)
	f.backend.insertErr = domain.ErrStoreUnavailable

	_, err := f.svc.IngestTrade(context.Background(), tradePayload(map[string]any{"notes": "x"}))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, f.advisor.tradeCalls)
}

func TestIngestStructureWithNotes(t *testing.T) {
	f := newIngest(t)
	f.advisor.text = "Bullish continuation likely."

	res, err := f.svc.IngestStructure(context.Background(), Payload{
		"instrument": "ES", "structure_type": "BOS", "price_level": "4510.25",
		"direction": "BULLISH", "notes": "broke Asia high",
	})
	require.NoError(t, err)
	assert.Equal(t, 4510.25, res.Structure.PriceLevel)
	require.NotNil(t, res.AIAnalysis)
	assert.Equal(t, "Bullish continuation likely.", *res.AIAnalysis)
	require.Len(t, f.advisor.structCall, 1)
}

func TestIngestStructureBlankNotesSkipsAdvisor(t *testing.T) {
	f := newIngest(t)

	res, err := f.svc.IngestStructure(context.Background(), Payload{
		"instrument": "ES", "structure_type": "CHoCH", "price_level": 4500,
		"direction": "BEARISH", "notes": "",
	})
	require.NoError(t, err)
	assert.Nil(t, res.AIAnalysis)
	assert.False(t, res.Analysis.Attempted)
	assert.Empty(t, f.advisor.structCall)
}
