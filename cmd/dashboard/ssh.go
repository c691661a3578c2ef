package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"trademind/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	startSSHServerFunc    = func(s *ssh.Server) error { return s.ListenAndServe() }
	shutdownSSHServerFunc = func(s *ssh.Server, ctx context.Context) error { return s.Shutdown(ctx) }
	setupSignalNotify     = ossignal.Notify
	waitForSignalFunc     = func(quit <-chan os.Signal) { <-quit }
)

func newSSHCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the dashboard over SSH",
		Long: `Serve the dashboard to SSH clients. Each session gets its own view of the
journal. DASHBOARD_SSH_AUTHORIZED_KEYS must name an authorized_keys file; only
the listed public keys may connect. Screenshot paths are not read from the
server over SSH.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			if addr != "" {
				rt.cfg.DashboardSSHAddr = addr
			}
			return serveSSH(rt)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DASHBOARD_SSH_ADDR)")
	return cmd
}

var (
	errNoAuthorizedKeys = errors.New("DASHBOARD_SSH_AUTHORIZED_KEYS is required to serve the dashboard over SSH")
	errHostFilesOverSSH = errors.New("screenshot files cannot be read from the server over SSH; upload through the API instead")
)

// newSSHServer only accepts the public keys in the authorized_keys file.
// Without one the ssh server would fall back to no client auth.
func newSSHServer(rt *runtime) (*ssh.Server, error) {
	if strings.TrimSpace(rt.cfg.DashboardAuthorizedKeys) == "" {
		return nil, errNoAuthorizedKeys
	}
	return wish.NewServer(
		wish.WithAddress(rt.cfg.DashboardSSHAddr),
		wish.WithHostKeyPath(rt.cfg.DashboardSSHHostKey),
		wish.WithAuthorizedKeys(rt.cfg.DashboardAuthorizedKeys),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(rt)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
}

func sessionHandler(rt *runtime) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		rt.log.Info("dashboard session started", zap.String("user", s.User()))
		return tui.NewAppModel(sshServices(rt, s.User())), []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// sshServices is tuiServices for a remote session: the screenshot path
// input would otherwise name files on the server host.
func sshServices(rt *runtime, username string) tui.Services {
	services := rt.tuiServices(username)
	services.ReadFile = func(string) ([]byte, error) { return nil, errHostFilesOverSSH }
	return services
}

func serveSSH(rt *runtime) error {
	srv, err := newSSHServer(rt)
	if err != nil {
		return fmt.Errorf("create ssh server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		rt.log.Info("ssh dashboard listening", zap.String("addr", rt.cfg.DashboardSSHAddr))
		if err := startSSHServerFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		waitForSignalFunc(quit)
		close(stopped)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("ssh server failed: %w", err)
		}
	case <-stopped:
	}

	rt.log.Info("shutting down ssh dashboard")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownSSHServerFunc(srv, ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh server forced to shutdown: %w", err)
	}
	return nil
}
