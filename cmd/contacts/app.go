package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/contacts/internal/config"
	"github.com/dropDatabas3/contacts/internal/observability/logger"
	"github.com/dropDatabas3/contacts/internal/store/pg"
)

// app agrupa el estado compartido por los subcomandos.
type app struct {
	cfgPath string
	dsn     string
	out     string

	cfg   *config.Config
	store *pg.Store
	w     io.Writer
}

func (a *app) printer() *printer {
	w := a.w
	if w == nil {
		w = os.Stdout
	}
	return &printer{w: w, json: a.out == "json"}
}

// open carga config, inicializa el logger y abre la conexión.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	if a.dsn != "" {
		cfg.Storage.DSN = a.dsn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "contacts"})

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ConnectTimeout())
	defer cancel()
	s, err := pg.Open(ctx, cfg.Storage.DSN)
	if err != nil {
		return err
	}
	a.store = s

	if cfg.Flags.ResetOnStart {
		logger.L().Warn("reset_on_start enabled: dropping contacts schema")
		if err := s.ResetSchema(cmd.Context()); err != nil {
			return err
		}
		return s.InitializeSchema(cmd.Context())
	}
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(context.Background()); err != nil {
		logger.L().Warn("closing pg connection", logger.Err(err))
	}
}
