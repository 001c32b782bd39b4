package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hanzong05/kitapos-middleware/internal/config"
)

// ErrNotConfigured is returned when no DSN was provided.
var ErrNotConfigured = errors.New("postgres not configured")

// Postgres lazily establishes a pgx connection pool. The first caller
// performs the connect; concurrent callers during initialization await the
// same in-flight attempt instead of racing to open duplicate pools. A failed
// attempt is not retried internally; the next request triggers a fresh one.
type Postgres struct {
	cfg    config.PostgresConfig
	logger *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	pool  *pgxpool.Pool
}

// NewPostgres builds the lazy handle; no connection is made yet.
func NewPostgres(cfg config.PostgresConfig, logger *zap.Logger) *Postgres {
	return &Postgres{cfg: cfg, logger: logger}
}

// Pool returns a ready-to-use pool, connecting on first use.
func (p *Postgres) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.RLock()
	pool := p.pool
	p.mu.RUnlock()
	if pool != nil {
		return pool, nil
	}

	if p.cfg.DSN == "" {
		return nil, ErrNotConfigured
	}

	result, err, _ := p.group.Do("connect", func() (any, error) {
		p.mu.RLock()
		existing := p.pool
		p.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		pool, err := p.connect(ctx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.pool = pool
		p.mu.Unlock()
		p.logger.Info("connected to postgres")
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*pgxpool.Pool), nil
}

func (p *Postgres) connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(p.cfg.DSN)
	if err != nil {
		return nil, err
	}

	if p.cfg.MaxConns > 0 {
		poolCfg.MaxConns = p.cfg.MaxConns
	}
	if p.cfg.MinConns > 0 {
		poolCfg.MinConns = p.cfg.MinConns
	}
	if p.cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(p.cfg.ConnMaxIdleSec) * time.Second
	}
	if p.cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(p.cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Ping verifies connectivity, connecting first if needed.
func (p *Postgres) Ping(ctx context.Context) error {
	pool, err := p.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}
