package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/internal/euler/server"
	"github.com/msto63/mRW/internal/euler/service"
	"github.com/msto63/mRW/pkg/core/logging"
	"github.com/msto63/mRW/pkg/core/version"
)

// pruneInterval is how often serve prunes the history
const pruneInterval = 24 * time.Hour

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Startet den HTTP/WebSocket-Server",
		Long: `Startet den Euler-Server von meinRECHENWERK.

Endpunkte:
  GET  /health                       Gesundheitszustand
  GET  /metrics                      Prometheus-Metriken
  GET  /api/v1/calculators           Rechner auflisten
  GET  /api/v1/calculators/{name}    Rechner beschreiben
  POST /api/v1/calculators/{name}    Berechnen ({"fields": {...}})
  GET  /api/v1/history               Verlauf
  GET  /api/v1/ws                    WebSocket für Live-Berechnungen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logging.Configure(logging.LoggerConfig{
				Level:  serveLogLevel(a),
				Format: a.config.General.LogFormat,
			})
			logger := logging.New("mrw-serve")

			svc, err := a.newService(true)
			if err != nil {
				return err
			}
			defer svc.Close()

			cfg := a.config.Server
			srvCfg := server.Config{
				Host:           cfg.Host,
				Port:           cfg.Port,
				ReadTimeout:    cfg.ReadTimeout.Duration,
				WriteTimeout:   cfg.WriteTimeout.Duration,
				MaxRequestSize: cfg.MaxRequestSize,
				RateLimit:      cfg.RateLimit,
				Burst:          cfg.Burst,
				Version:        version.Euler,
			}
			if cmd.Flags().Changed("host") {
				srvCfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				srvCfg.Port = port
			}

			srv, err := server.New(srvCfg, svc)
			if err != nil {
				return err
			}

			if svc.HasHistory() && a.config.Retention() > 0 {
				go pruneLoop(ctx, svc, a.config.Retention(), logger)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "meinRECHENWERK Euler v%s auf http://%s:%d\n", version.Euler, srvCfg.Host, srvCfg.Port)
			if err := srv.StartAsync(); err != nil {
				return err
			}

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host (default aus der Config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port (default aus der Config)")
	return cmd
}

func serveLogLevel(a *app) string {
	if a.verbose {
		return "debug"
	}
	return a.config.General.LogLevel
}

// pruneLoop drops journal entries older than retention, once at start and
// then every pruneInterval
func pruneLoop(ctx context.Context, svc *service.Service, retention time.Duration, logger *logging.Logger) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		if n, err := svc.Prune(ctx, retention); err != nil {
			logger.Warn("History prune failed", "error", err)
		} else if n > 0 {
			logger.Info("History pruned", "removed", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
