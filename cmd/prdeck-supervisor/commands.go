package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	prdeck "github.com/prdeck/prdeck-desktop"
	"github.com/prdeck/prdeck-desktop/internal/config"
	"github.com/prdeck/prdeck-desktop/internal/metrics"
	"github.com/prdeck/prdeck-desktop/internal/paths"
	"github.com/prdeck/prdeck-desktop/internal/platform"
	"github.com/prometheus/client_golang/prometheus"
)

// GlobalFlags holds the persistent flags shared by all subcommands.
type GlobalFlags struct {
	ConfigPath string
}

func buildRoot() *cobra.Command {
	flags := &GlobalFlags{}
	root := &cobra.Command{
		Use:   "prdeck-supervisor",
		Short: "Sidecar supervisor for the prdeck desktop application",
		Long: `prdeck-supervisor launches the application's sidecar processes (the
backend server and, on supported platforms, the embedded graph engine),
keeps their handles for the lifetime of the application window, and
terminates them when the window closes.

Examples:
  prdeck-supervisor run
  prdeck-supervisor run --config=supervisor.toml
  prdeck-supervisor paths`,
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	root.AddCommand(
		createRunCommand(flags),
		createPathsCommand(),
	)
	return root
}

// createRunCommand builds the headless shell: it boots the supervisor and
// maps SIGINT/SIGTERM to the window-destroyed event the GUI would deliver.
func createRunCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the sidecars and supervise them until shutdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.ConfigPath)
			if err != nil {
				return err
			}
			slog.SetDefault(cfg.Log.NewSlogger())
			return runSupervisor(cmd.Context(), cfg)
		},
	}
}

func runSupervisor(ctx context.Context, cfg config.Config) error {
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		slog.Warn("metrics registration failed", "error", err)
	}
	if cfg.MetricsListen != "" {
		go serveMetrics(cfg.MetricsListen)
	}

	opts := []prdeck.Option{}
	if path := historyPath(cfg); path != "" {
		if st, err := prdeck.OpenHistory(path); err != nil {
			slog.Warn("history store unavailable", "path", path, "error", err)
		} else {
			defer func() { _ = st.Close() }()
			opts = append(opts, prdeck.WithHistory(st))
		}
	}

	sup := prdeck.New(cfg, opts...)
	sup.Start(ctx)
	slog.Info("application running", "graph_supported", platform.GraphSupported())

	// In the packaged application the GUI shell delivers the
	// window-destroyed event; headless runs translate SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("shutdown requested", "signal", sig.String())
	case <-ctx.Done():
	}
	sup.OnWindowDestroyed()
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	slog.Info("metrics listener enabled", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Warn("metrics listener stopped", "error", err)
	}
}

// createPathsCommand prints the resolved platform paths, a packaging debug
// helper.
func createPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved graph module and data directory for this platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !platform.GraphSupported() {
				_, _ = fmt.Fprintln(out, "graph engine: not supported on this platform")
				return nil
			}
			exe, err := os.Executable()
			if err != nil {
				return err
			}
			mod, err := paths.ModulePath(filepath.Dir(exe), runtime.GOOS, runtime.GOARCH)
			if err != nil {
				_, _ = fmt.Fprintf(out, "graph module: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(out, "graph module: %s\n", mod)
			}
			data, err := paths.DataDir()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "graph data dir: %s\n", data)
			return nil
		},
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func historyPath(cfg config.Config) string {
	if cfg.HistoryPath != "" {
		return cfg.HistoryPath
	}
	data, err := paths.DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(data), config.DefaultHistoryDBName)
}
