package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/app"
	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/llm"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/metrics"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/qcache"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/selector"
	"github.com/abhisek/sparky/internal/selfupdate"
	"github.com/abhisek/sparky/internal/store"
)

// engine is everything a command needs to run practice.
type engine struct {
	store   *store.Store
	redis   *store.RedisKV
	svc     *practice.Service
	metrics *metrics.Metrics
	offline bool
}

// openEngine opens storage and builds the practice service. Redis backs
// the profile and question cache when SPARKY_REDIS_URL is set; SQLite
// always keeps the event log.
func openEngine(ctx context.Context) (*engine, error) {
	log := logging.FromContext(ctx)

	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &engine{store: st, metrics: metrics.New()}

	var kv store.KV = st.KV()
	if cfg.RedisURL != "" {
		e.redis, err = store.OpenRedis(ctx, cfg.RedisURL, cfg.RedisNamespace)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("open redis: %w", err)
		}
		kv = e.redis
		log.Debug().Str("namespace", cfg.RedisNamespace).Msg("using redis for profile and question cache")
	}

	gen, offline, err := newGenerator(ctx, st.EventRepo())
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	e.offline = offline

	shuffler := selector.New()
	if cfg.Practice.Seed != 0 {
		shuffler = selector.NewSeeded(cfg.Practice.Seed)
	}

	loader := qcache.NewLoader(
		qcache.New(kv, nil, cfg.Practice.CacheVersion),
		func(ctx context.Context, level difficulty.Level, grade int) (question.Pool, error) {
			return contentgen.GeneratePool(ctx, gen, level, grade)
		},
		e.metrics,
	)

	e.svc = practice.New(practice.Options{
		Progress:    progress.Load(ctx, kv, nil),
		Loader:      loader,
		Generator:   gen,
		Shuffler:    shuffler,
		Events:      st.EventRepo(),
		Metrics:     e.metrics,
		SessionSize: cfg.Practice.SessionSize,
	})
	return e, nil
}

// newGenerator returns the LLM-backed generator, or the offline bank when
// offline mode is on or no provider is configured.
func newGenerator(ctx context.Context, events store.EventRepo) (contentgen.Generator, bool, error) {
	if !cfg.Practice.Offline {
		provider, err := llm.NewProviderFromEnv(ctx, events)
		if err == nil {
			return contentgen.New(provider, contentgen.DefaultConfig()), false, nil
		}
		logging.FromContext(ctx).Warn().Err(err).Msg("LLM provider not configured, using the offline question bank")
	}
	offline, err := contentgen.NewOffline()
	if err != nil {
		return nil, false, fmt.Errorf("load offline question bank: %w", err)
	}
	return offline, true, nil
}

func (e *engine) Close() error {
	var errs []error
	if e.redis != nil {
		errs = append(errs, e.redis.Close())
	}
	errs = append(errs, e.store.Close())
	return errors.Join(errs...)
}

// runApp opens the engine and launches the TUI. The terminal belongs to
// the UI, so logs go to a file in the data directory.
func runApp(cmd *cobra.Command, skipSplash bool) error {
	ctx := cmd.Context()

	dir, err := store.DataDir()
	if err != nil {
		return err
	}
	logger, closer, err := logging.NewFile(appName, cfg.Env, cfg.LogLevel, filepath.Join(dir, "sparky.log"))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()
	ctx = logging.IntoContext(ctx, logger)

	e, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(ctx, app.Options{
		Service:       e.svc,
		Offline:       e.offline,
		LatestVersion: latestVersion(ctx),
		SkipSplash:    skipSplash,
	})
}

// latestVersion returns the newest release tag when it is newer than this
// build, or "" when there is none or the check fails.
func latestVersion(ctx context.Context) string {
	if version == selfupdate.DevVersion {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("update check failed")
		return ""
	}
	if !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
