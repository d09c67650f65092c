package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/contacts/internal/config"
	"github.com/dropDatabas3/contacts/internal/observability/logger"
	migrations "github.com/dropDatabas3/contacts/migrations/postgres"
)

// migrate aplica *_up.sql (orden ascendente) o *_down.sql (orden inverso).
// No lleva tabla de versiones: los scripts son idempotentes.
func main() {
	var (
		configPath = flag.String("config", "", "Path al YAML de config (opcional)")
		dir        = flag.String("dir", "", "Directorio con *_up.sql/*_down.sql (default: embebidos)")
	)
	flag.Parse()

	action := "up"
	if args := flag.Args(); len(args) >= 1 && args[0] != "" {
		action = strings.ToLower(args[0])
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("config load", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}
	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "contacts-migrate"})
	defer logger.Sync()
	log := logger.S()

	var fsys fs.FS = migrations.FS
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	var suffix string
	switch action {
	case "up":
		suffix = "_up.sql"
	case "down":
		suffix = "_down.sql"
	default:
		fatal("action", fmt.Errorf("unknown action %q. Use: up | down", action))
	}

	files, err := listSQL(fsys, suffix)
	if err != nil {
		fatal("list", err)
	}
	if len(files) == 0 {
		log.Infof("No *%s migrations found. Nothing to do.", suffix)
		return
	}
	if action == "down" {
		reverseInPlace(files)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Storage.DSN)
	if err != nil {
		fatal("connect", err)
	}
	defer conn.Close(ctx)

	log.Infof("Applying %d %s migration(s)...", len(files), action)
	for _, f := range files {
		if err := execSQLFile(ctx, conn, fsys, f); err != nil {
			fatal("exec "+f, err)
		}
		log.Infof("OK %s", f)
	}
	log.Infof("%s migrations completed.", action)
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	_ = logger.Sync()
	os.Exit(1)
}

// listSQL retorna los archivos con suffix en orden ascendente.
func listSQL(fsys fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func reverseInPlace(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}

func execSQLFile(ctx context.Context, conn *pgx.Conn, fsys fs.FS, name string) error {
	b, err := fs.ReadFile(fsys, filepath.ToSlash(name))
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	start := time.Now()
	if _, err := conn.Exec(ctx, string(b)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	logger.L().Debug("migration applied", logger.String("file", name), logger.Duration(time.Since(start)))
	return nil
}
