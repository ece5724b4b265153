package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/platform/tui"
	"github.com/vovakirdan/tui-duel/internal/session"
	"github.com/vovakirdan/tui-duel/internal/statsapi"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the duel SSH server and stats API",
	Long: `Start an SSH server that lets users connect and play, and an HTTP server
with a read-only JSON view of results and live campaigns.

Each SSH connection gets its own session with a menu and its own campaign.
Results are stored per-server (all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.duel/host_key

Examples:
  duel serve                           # SSH on :23234, API on :8080
  duel serve --ssh :2222 --http ""     # SSH only, on port 2222
  duel serve --host-key ./my_host_key  # Use specific host key
  duel serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty disables)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "Stats API address (host:port, empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	} else if flagHTTPAddr != "" {
		return errors.New("the stats API needs a results database (--db)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	live := session.NewLive()
	errCh := make(chan error, 2)
	running := 0

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

		server, err := tui.NewSSHServer(sshCfg, cfg, store, live, logger.WithPrefix("duel-ssh"))
		if err != nil {
			return err
		}
		running++
		go func() { errCh <- server.ListenAndServe(ctx) }()
		if _, p, err := net.SplitHostPort(flagSSHAddr); err == nil {
			logger.Info("connect with", "cmd", "ssh localhost -p "+p)
		}
	}

	if flagHTTPAddr != "" {
		api := statsapi.NewServer(store, live, logger.WithPrefix("duel-api"))
		running++
		go func() { errCh <- api.ListenAndServe(ctx, flagHTTPAddr) }()
	}

	logger.Info("press Ctrl+C to stop")

	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}
