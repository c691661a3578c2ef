package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"trademind/internal/app"
	"trademind/internal/config"
	"trademind/pkg/tracing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func mcpConfig(transport string) *config.Config {
	return &config.Config{
		SupabaseURL:           "https://project.supabase.test",
		SupabaseKey:           "anon",
		SupabaseBucket:        "screenshots",
		StoreBackend:          config.BackendSQLite,
		SQLitePath:            ":memory:",
		OpenAIAPIKey:          "sk-test",
		OpenAIModel:           "gpt-4o-mini",
		OpenAITimeoutSecs:     30,
		LogLevel:              "info",
		LogFormat:             "json",
		JournalTimezone:       "UTC",
		MCPTransport:          transport,
		MCPHTTPBind:           "127.0.0.1",
		MCPHTTPPort:           8090,
		MCPAuthToken:          "secret",
		MCPRequestTimeoutSecs: 10,
		MCPRateLimitPerMin:    60,
	}
}

func stubMCPDeps(t *testing.T, cfg *config.Config) {
	t.Helper()
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origNewLogger := newLoggerFunc
	origInitTracer := initTracerFunc
	origBuild := buildServicesFunc
	origRunStdio := runStdioFunc
	origStartHTTP := startHTTPServerFunc
	origShutdown := shutdownHTTPServerFn
	origNotify := setupSignalNotify
	origWait := waitForSignalFunc
	origExit := exitFunc
	t.Cleanup(func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		newLoggerFunc = origNewLogger
		initTracerFunc = origInitTracer
		buildServicesFunc = origBuild
		runStdioFunc = origRunStdio
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFn = origShutdown
		setupSignalNotify = origNotify
		waitForSignalFunc = origWait
		exitFunc = origExit
	})

	loadEnvFunc = func(...string) error { return errors.New("no .env") }
	loadConfigFunc = func() *config.Config { return cfg }
	newLoggerFunc = func(string, string, ...string) (*zap.Logger, error) { return zap.NewNop(), nil }
	initTracerFunc = func(context.Context, tracing.Options) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	buildServicesFunc = app.Build
	runStdioFunc = func(context.Context, *sdkmcp.Server) error { return nil }
	setupSignalNotify = func(chan<- os.Signal, ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFn = func(*http.Server, context.Context) error { return nil }
}

func TestRunStdio(t *testing.T) {
	stubMCPDeps(t, mcpConfig("stdio"))

	var got *sdkmcp.Server
	runStdioFunc = func(_ context.Context, server *sdkmcp.Server) error {
		got = server
		return nil
	}

	require.NoError(t, run())
	assert.NotNil(t, got)
}

func TestRunStdioLogsToStderr(t *testing.T) {
	stubMCPDeps(t, mcpConfig("stdio"))

	var paths []string
	newLoggerFunc = func(_ string, _ string, out ...string) (*zap.Logger, error) {
		paths = out
		return zap.NewNop(), nil
	}

	require.NoError(t, run())
	assert.Equal(t, []string{"stderr"}, paths)
}

func TestRunStdioFailure(t *testing.T) {
	stubMCPDeps(t, mcpConfig("stdio"))
	runStdioFunc = func(context.Context, *sdkmcp.Server) error { return errors.New("pipe closed") }

	assert.ErrorContains(t, run(), "pipe closed")
}

func TestRunHTTP(t *testing.T) {
	stubMCPDeps(t, mcpConfig("http"))

	started := make(chan *http.Server, 1)
	release := make(chan struct{})
	startHTTPServerFunc = func(srv *http.Server) error {
		started <- srv
		<-release
		return http.ErrServerClosed
	}
	waitForSignalFunc = func(<-chan os.Signal) {
		srv := <-started
		assert.Equal(t, "127.0.0.1:8090", srv.Addr)
		assert.NotNil(t, srv.Handler)
		close(release)
	}

	done := make(chan error, 1)
	go func() { done <- run() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not exit")
	}
}

func TestRunHTTPRequiresToken(t *testing.T) {
	cfg := mcpConfig("http")
	cfg.MCPAuthToken = " "
	stubMCPDeps(t, cfg)

	assert.ErrorContains(t, run(), "MCP_AUTH_TOKEN is required")
}

func TestRunHTTPListenFailure(t *testing.T) {
	stubMCPDeps(t, mcpConfig("http"))
	startHTTPServerFunc = func(*http.Server) error { return errors.New("address in use") }
	waitForSignalFunc = func(<-chan os.Signal) { select {} }

	assert.ErrorContains(t, run(), "address in use")
}

func TestRunUnsupportedTransport(t *testing.T) {
	stubMCPDeps(t, mcpConfig("grpc"))
	assert.ErrorContains(t, run(), "unsupported MCP_TRANSPORT")
}

func TestMainExitsOnError(t *testing.T) {
	cfg := mcpConfig("stdio")
	cfg.OpenAIAPIKey = ""
	stubMCPDeps(t, cfg)

	code := 0
	exitFunc = func(c int) { code = c }
	main()
	assert.Equal(t, 1, code)
}

func TestHTTPAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8090", httpAddr("", 0))
	assert.Equal(t, "0.0.0.0:9000", httpAddr("0.0.0.0", 9000))
	assert.Equal(t, "[::1]:9000", httpAddr("::1", 9000))
}
