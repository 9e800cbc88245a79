package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DefaultAlias is the store every target can fall back to. It must be
// configured; the other aliases are optional.
const DefaultAlias = "default"

// ErrStoreNotConfigured is returned when a write targets an alias that
// has no connection pool. It is the only persistence error the
// ingestion path may retry (once, against the default alias).
var ErrStoreNotConfigured = errors.New("store alias not configured")

// Stores is the process-wide alias table mapping logical store names to
// PostgreSQL connection pools. It is built once at startup and never
// mutated afterwards, so concurrent reads need no synchronization.
type Stores struct {
	pools map[string]*pgxpool.Pool
}

// NewStores builds one pool per configured alias. The default alias is
// pinged on startup; optional aliases connect lazily so a downed
// secondary store does not block boot. All pools close on shutdown.
func NewStores(lc fx.Lifecycle, logger *zap.Logger, dsns map[string]string) (*Stores, error) {
	if _, ok := dsns[DefaultAlias]; !ok {
		return nil, fmt.Errorf("store table must include the %q alias", DefaultAlias)
	}

	pools := make(map[string]*pgxpool.Pool, len(dsns))
	for alias, dsn := range dsns {
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DSN for store %q: %w", alias, err)
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pool for store %q: %w", alias, err)
		}
		pools[alias] = pool
		logger.Info("store alias registered",
			zap.String("alias", alias),
			zap.String("dsn", maskPassword(dsn)))
	}

	stores := &Stores{pools: pools}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("attempting to connect to default store...")
			if err := pools[DefaultAlias].Ping(ctx); err != nil {
				logger.Error("default store ping failed", zap.Error(err))
				return fmt.Errorf("cannot reach default store, check DATABASE_URL and that PostgreSQL is running: %w", err)
			}
			logger.Info("default store connection established")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for alias, pool := range pools {
				pool.Close()
				logger.Info("store connection closed", zap.String("alias", alias))
			}
			return nil
		},
	})

	return stores, nil
}

// Pool returns the pool for an alias, or ErrStoreNotConfigured.
func (s *Stores) Pool(alias string) (*pgxpool.Pool, error) {
	pool, ok := s.pools[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStoreNotConfigured, alias)
	}
	return pool, nil
}

// Has reports whether an alias was configured at startup.
func (s *Stores) Has(alias string) bool {
	_, ok := s.pools[alias]
	return ok
}

// Aliases lists the configured aliases in stable order.
func (s *Stores) Aliases() []string {
	aliases := make([]string, 0, len(s.pools))
	for alias := range s.pools {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// maskPassword masks the password in a DSN for logging.
func maskPassword(url string) string {
	if len(url) == 0 {
		return "<empty>"
	}
	start := 0
	for i := 0; i < len(url); i++ {
		if url[i] == ':' && i > 0 && url[i-1] != '/' {
			start = i + 1
		}
		if url[i] == '@' && start > 0 {
			return url[:start] + "***" + url[i:]
		}
	}
	return url
}
