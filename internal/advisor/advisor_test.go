package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trademind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(body)
}

func newTestAdvisor(t *testing.T, handler http.HandlerFunc) (*Advisor, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	a := New(Config{
		APIKey:  "sk-test",
		BaseURL: server.URL + "/",
		Timeout: 2 * time.Second,
	}, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
	return a, &calls
}

func sampleTrade() domain.Trade {
	return domain.Trade{
		Instrument: "ES", Direction: domain.DirectionLong,
		EntryPrice: 4500.25, StopLoss: 4480.5, TakeProfit: 4550.75,
		RiskReward: 2.56, Notes: domain.StringPtr("waited for the retest"),
	}
}

func TestTradeFeedbackSendsPromptAndParameters(t *testing.T) {
	a, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model       string  `json:"model"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, 500, req.MaxTokens)
		assert.Equal(t, 0.7, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, tradeSystemPrompt, req.Messages[0].Content)
		assert.Contains(t, req.Messages[1].Content, "Entry Price: 4500.25")
		assert.Contains(t, req.Messages[1].Content, "Trader's Notes: waited for the retest")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("  Solid risk management. Score: 8/10  ")))
	})

	text, err := a.TradeFeedback(context.Background(), sampleTrade())
	require.NoError(t, err)
	assert.Equal(t, "Solid risk management. Score: 8/10", text)
}

func TestStructureAnalysis(t *testing.T) {
	a, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("Bearish shift confirmed.")))
	})

	text, err := a.StructureAnalysis(context.Background(), domain.Structure{
		Instrument: "NQ", StructureType: domain.StructureCHoCH, Direction: domain.StructureBearish, PriceLevel: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearish shift confirmed.", text)
}

func TestFailureIsSingleAttemptAIServiceError(t *testing.T) {
	a, calls := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream down","type":"server_error"}}`))
	})

	_, err := a.TradeFeedback(context.Background(), sampleTrade())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAIService)
	var aiErr *AIServiceError
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, "trade feedback", aiErr.Op)
	assert.Equal(t, 1, *calls)
}

func TestEmptyContentIsAIServiceError(t *testing.T) {
	a, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("   ")))
	})

	_, err := a.StructureAnalysis(context.Background(), domain.Structure{Instrument: "ES"})
	assert.ErrorIs(t, err, domain.ErrAIService)
}

func TestNoChoicesIsAIServiceError(t *testing.T) {
	a, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	})

	_, err := a.TradeFeedback(context.Background(), sampleTrade())
	assert.ErrorIs(t, err, domain.ErrAIService)
}

func TestTimeoutIsAIServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	a := New(Config{APIKey: "k", BaseURL: server.URL + "/", Timeout: 50 * time.Millisecond},
		noop.NewTracerProvider().Tracer("test"), zap.NewNop())
	_, err := a.TradeFeedback(context.Background(), sampleTrade())
	assert.ErrorIs(t, err, domain.ErrAIService)
}
