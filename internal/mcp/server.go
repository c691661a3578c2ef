package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// trade_analyze waits on the language model, which has its own timeout.
	defaultAnalyzeTimeout = 60 * time.Second
)

type ServerConfig struct {
	RequestTimeout time.Duration
	AnalyzeTimeout time.Duration
	Location       *time.Location
	Logger         *zap.Logger
	Now            func() time.Time
}

func NewServer(tracer trace.Tracer, j Journal, cfg ServerConfig) *sdkmcp.Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.AnalyzeTimeout < cfg.RequestTimeout {
		cfg.AnalyzeTimeout = max(defaultAnalyzeTimeout, cfg.RequestTimeout)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "trademind-mcp",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: "Use these tools/resources to review the trading journal, annotate trades and request AI coaching feedback.",
		Logger:       slog.Default(),
	})

	srv.AddReceivingMiddleware(timeoutMiddleware(cfg.RequestTimeout, cfg.AnalyzeTimeout))
	srv.AddReceivingMiddleware(loggingMiddleware(cfg.Logger))
	if tracer != nil {
		srv.AddReceivingMiddleware(tracingMiddleware(tracer))
	}

	var reader JournalReader
	if j != nil {
		reader = j
	}
	registerTools(srv, j, cfg.Location, cfg.Now)
	registerResources(srv, reader, cfg.Location, cfg.Now)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

func timeoutMiddleware(timeout, analyzeTimeout time.Duration) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			limit := timeout
			if toolName(req) == toolTradeAnalyze {
				limit = analyzeTimeout
			}
			if limit <= 0 {
				return next(ctx, method, req)
			}
			timeoutCtx, cancel := context.WithTimeout(ctx, limit)
			defer cancel()
			return next(timeoutCtx, method, req)
		}
	}
}

func loggingMiddleware(log *zap.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)

			fields := []zap.Field{zap.String("method", method), zap.Duration("elapsed", time.Since(start))}
			if name := toolName(req); name != "" {
				fields = append(fields, zap.String("tool", name))
			}
			if callResult, ok := result.(*sdkmcp.CallToolResult); ok && callResult != nil && callResult.IsError {
				log.Warn("mcp tool returned an error", fields...)
			} else if err != nil {
				log.Warn("mcp request failed", append(fields, zap.Error(err))...)
			} else {
				log.Debug("mcp request", fields...)
			}
			return result, err
		}
	}
}

// tracingMiddleware opens one span per MCP call, tagged with the tool or
// resource and, for tools that take one, the trade id.
func tracingMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			target := describe(method, req)
			ctx, span := tracer.Start(ctx, target.spanName)
			defer span.End()
			span.SetAttributes(target.attrs...)

			result, err := next(ctx, method, req)
			if err != nil {
				span.RecordError(err)
			}
			return result, err
		}
	}
}

type callTarget struct {
	spanName string
	attrs    []attribute.KeyValue
}

func describe(method string, req sdkmcp.Request) callTarget {
	t := callTarget{attrs: []attribute.KeyValue{attribute.String("mcp.method", method)}}
	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		name := toolName(req)
		if name == "" {
			t.spanName = "journal.mcp.tool"
			return t
		}
		t.spanName = "journal.mcp.tool." + name
		t.attrs = append(t.attrs, attribute.String("mcp.tool", name))
		if id := toolTradeID(r); id != "" {
			t.attrs = append(t.attrs, attribute.String("trade.id", id))
		}
	case *sdkmcp.ReadResourceRequest:
		uri := ""
		if r.Params != nil {
			uri = strings.TrimSpace(r.Params.URI)
		}
		t.spanName = "journal.mcp.resource"
		if scheme, _, ok := strings.Cut(uri, "://"); ok && scheme != "" {
			t.spanName += "." + scheme
		}
		t.attrs = append(t.attrs, attribute.String("mcp.resource.uri", uri))
	default:
		t.spanName = "journal.mcp." + strings.ReplaceAll(method, "/", ".")
	}
	return t
}

func toolName(req sdkmcp.Request) string {
	callReq, ok := req.(*sdkmcp.CallToolRequest)
	if !ok || callReq.Params == nil {
		return ""
	}
	return strings.TrimSpace(callReq.Params.Name)
}

// toolTradeID peeks at the raw arguments for an "id" field. Malformed
// arguments are left for the tool handler to reject.
func toolTradeID(req *sdkmcp.CallToolRequest) string {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return ""
	}
	var args struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return ""
	}
	return strings.TrimSpace(args.ID)
}
