package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"rosterline/internal/config"
	"rosterline/internal/db"
	"rosterline/internal/engine"
	"rosterline/internal/logger"
	"rosterline/internal/metrics"
	"rosterline/internal/migrate"
)

// Options tune OpenWorkspace.
type Options struct {
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	// LogLevel overrides logging.level from rosterline.yml when set.
	LogLevel string
	Console  bool
	Metrics  metrics.Recorder
}

// Workspace is an opened, migrated rosterline workspace.
type Workspace struct {
	Dir           string
	DB            *sql.DB
	Config        *config.Config
	Log           *logger.ZerologLogger
	Engine        engine.Engine
	SchemaVersion int
}

// OpenWorkspace creates the workspace directory if needed, loads rosterline.yml
// (falling back to defaults), opens and migrates the database and wires an engine.
func OpenWorkspace(ctx context.Context, dir string, opts Options) (*Workspace, error) {
	if _, err := db.EnsureWorkspace(dir); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOptional(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log := logger.New("rosterline", logger.Options{Level: level, Output: opts.LogOutput, Console: opts.Console})

	conn, err := db.Open(db.Config{Workspace: dir, JournalMode: "WAL"})
	if err != nil {
		return nil, err
	}
	version, err := migrate.Migrate(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate %s: %w", db.Path(dir), err)
	}
	log.Debugf("workspace %s at schema version %d", dir, version)

	eng := engine.New(conn, cfg)
	eng.Log = log.With("engine")
	if opts.Metrics != nil {
		eng.Metrics = opts.Metrics
	}
	return &Workspace{
		Dir:           dir,
		DB:            conn,
		Config:        cfg,
		Log:           log,
		Engine:        eng,
		SchemaVersion: version,
	}, nil
}

func (w *Workspace) Close() error {
	if w == nil || w.DB == nil {
		return nil
	}
	return w.DB.Close()
}
