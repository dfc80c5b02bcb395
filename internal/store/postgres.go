package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/IAMC-DH/my-site-template/internal/cache"
	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/pubsub"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `CREATE TABLE IF NOT EXISTS site_content (
	key TEXT PRIMARY KEY,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type postgres struct {
	db       *pgxpool.Pool
	cache    *cache.Cache
	bus      *pubsub.Bus
	dataDir  string
	editMode atomic.Bool
}

// NewPostgres opens the content store backed by a Postgres site_content
// table. Saved records are broadcast on bus after each successful write.
func NewPostgres(ctx context.Context, dbURL, dataDir string, bus *pubsub.Bus) (Store, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 1 * time.Minute
	cfg.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure site_content table: %w", err)
	}

	return &postgres{
		db:      pool,
		cache:   cache.NewCache(60 * time.Minute),
		bus:     bus,
		dataDir: dataDir,
	}, nil
}

func (p *postgres) Close() {
	p.db.Close()
}

func (p *postgres) GetData(ctx context.Context, key string) (config.Object, error) {
	if v, ok := p.cache.Get(key); ok {
		return config.Clone(v), nil
	}

	var raw []byte
	err := p.db.QueryRow(ctx, `SELECT value FROM site_content WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var value config.Object
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to decode record %q: %w", key, err)
	}

	p.cache.Set(key, config.Clone(value))
	return value, nil
}

func (p *postgres) SaveData(ctx context.Context, key string, value config.Object) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}

	_, err = p.db.Exec(ctx,
		`INSERT INTO site_content (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()`,
		key, raw)
	if err != nil {
		return err
	}

	p.cache.Set(key, config.Clone(value))
	p.bus.Publish(pubsub.Update{Key: key, Value: config.Clone(value)})
	return nil
}

func (p *postgres) SaveToFile(section, field string, value any) {
	go func() {
		if err := exportSection(p.dataDir, section, field, value); err != nil {
			slog.Error("Failed to export section", "section", section, "field", field, "error", err)
		}
	}()
}

func (p *postgres) EditMode() bool {
	return p.editMode.Load()
}

func (p *postgres) SetEditMode(enabled bool) {
	p.editMode.Store(enabled)
}
