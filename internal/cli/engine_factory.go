package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/internal/adapters/file"
	"github.com/aretw0/concierge/internal/config"
	"github.com/aretw0/concierge/internal/nlu"
	"github.com/aretw0/concierge/pkg/adapters/memory"
	"github.com/aretw0/concierge/pkg/adapters/redis"
	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/observability"
	"github.com/aretw0/concierge/pkg/persistence/middleware"
	"github.com/aretw0/concierge/pkg/ports"
)

// Runtime bundles the engine with the resources the commands need to share and release.
type Runtime struct {
	Engine  *concierge.Engine
	Store   ports.SessionStore
	Metrics *observability.Metrics
	Logger  *slog.Logger

	closers []func() error
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// LoadCatalog returns the configured catalog, or the built-in one when none is configured.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if len(cfg.Catalog) == 0 {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(cfg.Catalog...)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// NewRuntime wires catalog, store, middleware, locker, metrics and hooks from config.
func NewRuntime(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	matcher, err := nlu.MatcherByName(cfg.Matcher)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Metrics: observability.NewMetrics(),
		Logger:  logger,
	}

	store, locker, err := rt.openStore(cfg)
	if err != nil {
		return nil, err
	}
	rt.Store = store

	opts := []concierge.Option{
		concierge.WithStore(store),
		concierge.WithLogger(logger),
		concierge.WithMatcher(matcher),
		concierge.WithLifecycleHooks(rt.Metrics.Hooks()),
		concierge.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if locker != nil {
		opts = append(opts, concierge.WithLocker(locker), concierge.WithLockTTL(cfg.Redis.LockTTL))
	}

	rt.Engine, err = concierge.New(cat, opts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return rt, nil
}

// OpenStore builds only the session store, for commands that never run turns.
func OpenStore(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Metrics: observability.NewMetrics(), Logger: logger}
	store, _, err := rt.openStore(cfg)
	if err != nil {
		return nil, err
	}
	rt.Store = store
	return rt, nil
}

// openStore releases every connection it opened when it fails.
func (rt *Runtime) openStore(cfg *config.Config) (_ ports.SessionStore, locker ports.DistributedLocker, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(err, rt.Close())
			rt.closers = nil
		}
	}()

	var base ports.SessionStore

	switch cfg.Store.Backend {
	case config.BackendMemory:
		base = memory.NewStore()
	case config.BackendFile:
		base = file.New(cfg.Store.Dir)
	case config.BackendRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		rt.closers = append(rt.closers, rs.Close)
		base = rs
		locker = redis.NewLocker(rs.Client(), rs.Prefix())
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	mws := []middleware.Middleware{
		middleware.NewLoggingMiddleware(rt.Logger),
		middleware.NewMetricsMiddleware(middleware.NewStoreMetrics(rt.Metrics.Registry())),
	}

	if cfg.Store.EncryptionKey != "" {
		var active []byte
		active, err = middleware.DecodeKey(cfg.Store.EncryptionKey)
		if err != nil {
			return nil, nil, err
		}
		var fallbacks [][]byte
		for _, k := range cfg.Store.FallbackKeys {
			key, err := middleware.DecodeKey(k)
			if err != nil {
				return nil, nil, fmt.Errorf("fallback key: %w", err)
			}
			fallbacks = append(fallbacks, key)
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		}))
	}

	rt.Logger.Debug("session store ready", "backend", cfg.Store.Backend, "encrypted", cfg.Store.EncryptionKey != "")
	return middleware.Chain(base, mws...), locker, nil
}
