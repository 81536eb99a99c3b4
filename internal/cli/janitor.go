package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alcove-sh/alcove/internal/metrics"
	"github.com/alcove-sh/alcove/pkg/maintenance"
)

var janitorCmd = &cobra.Command{
	Use:   "janitor",
	Short: "Run the orphan sweep loop in the foreground",
	Args:  cobra.NoArgs,
	RunE:  runJanitor,
}

var janitorOnce bool

func init() {
	janitorCmd.Flags().BoolVar(&janitorOnce, "once", false, "run a single sweep and exit")
	rootCmd.AddCommand(janitorCmd)
}

func runJanitor(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	janitor, err := maintenance.NewJanitor(app.aliases, app.sessions, app.cfg.Maintenance.Schedule)
	if err != nil {
		return err
	}

	if janitorOnce {
		result, err := janitor.RunNow()
		if err != nil {
			return err
		}
		fmt.Printf("Checked %d alias(es), removed %d\n", result.TotalChecked, result.Removed)
		return nil
	}

	var metricsSrv *http.Server
	if app.cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: app.cfg.Metrics.Listen, Handler: mux}
		go func() {
			log.Info().Str("listen", app.cfg.Metrics.Listen).Msg("Metrics server started")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	if err := janitor.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	if err := janitor.Stop(); err != nil {
		log.Warn().Err(err).Msg("Janitor stop failed")
	}
	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(ctx)
	}
	return nil
}
