package main

import (
	"context"
	"fmt"
	"os"

	"trademind/internal/app"
	"trademind/internal/config"
	"trademind/internal/logger"
	"trademind/internal/tui"
	"trademind/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "trademind-dashboard"

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	newLoggerFunc     = logger.New
	initTracerFunc    = tracing.InitTracer
	buildServicesFunc = app.Build
	runProgramFunc    = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
	exitFunc = os.Exit
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitFunc(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse, filter and annotate journal trades in the terminal",
		Long: `Dashboard opens the trading journal TUI.

Trades and stats load from the configured store; notes, screenshots and AI
feedback are written back through the same services as the webhook server.
Logs go to DASHBOARD_LOG_FILE so they do not tear the terminal UI.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			return runProgramFunc(tui.NewAppModel(rt.tuiServices("")))
		},
	}

	cmd.AddCommand(newSSHCmd(), newExportCmd())
	return cmd
}

// runtime is everything a subcommand needs once configuration is loaded.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	svc      *app.Services
	shutdown func()
}

func (r *runtime) Close() {
	r.svc.Close()
	if r.shutdown != nil {
		r.shutdown()
	}
	_ = r.log.Sync()
}

func (r *runtime) tuiServices(username string) tui.Services {
	return tui.Services{
		Journal:    r.svc.Journal,
		Structures: r.svc.Journal,
		Location:   r.svc.Location,
		Username:   username,
	}
}

// bootstrap loads configuration and builds the journal services. Local
// terminal sessions log to DASHBOARD_LOG_FILE; everything else logs to
// stderr.
var bootstrap = func(ctx context.Context, logToStderr bool) (*runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	out := "stderr"
	if !logToStderr && cfg.DashboardLogFile != "" {
		out = cfg.DashboardLogFile
	}
	log, err := newLoggerFunc(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		ServiceName: serviceName,
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	svc, err := buildServicesFunc(ctx, cfg, tracer, log)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, err
	}

	return &runtime{
		cfg: cfg,
		log: log,
		svc: svc,
		shutdown: func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("error shutting down tracer provider", zap.Error(err))
			}
		},
	}, nil
}
