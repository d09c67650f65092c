package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/contacts/internal/http/router"
	"github.com/dropDatabas3/contacts/internal/metrics"
	"github.com/dropDatabas3/contacts/internal/observability/logger"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "API HTTP de solo lectura (/v1/clients, /healthz, /metrics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			if err := metrics.Register(nil); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           router.New(router.Deps{Store: a.store}),
				ReadHeaderTimeout: 5 * time.Second,
			}
			log := logger.Named("http")

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				log.Info("listening", logger.String("addr", addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				log.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Dirección de escucha (default: server.addr)")
	return cmd
}
