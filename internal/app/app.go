package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/config"
	"github.com/linkminder/linkminder/internal/httpserver"
	"github.com/linkminder/linkminder/internal/httpserver/deps"
	"github.com/linkminder/linkminder/internal/index"
	"github.com/linkminder/linkminder/internal/logger"
	"github.com/linkminder/linkminder/internal/redis"
	"github.com/linkminder/linkminder/internal/scheduler"
	"github.com/linkminder/linkminder/internal/sources/rulesfile"
	redisstore "github.com/linkminder/linkminder/internal/store/redis"
	"github.com/linkminder/linkminder/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	memIndex     *index.MemoryIndex
	collection   *collection.Collection
	syncer       *scheduler.IndexSyncer
	reclassifier *scheduler.Reclassifier
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	memIndex := index.NewMemoryIndex()
	store := redisstore.NewStore(redisClient)
	classifier := classify.NewClassifier(loggerClient)
	coll := collection.New(store, store, store, memIndex, classifier, loggerClient)

	syncer := scheduler.NewIndexSyncer(coll, loggerClient, cfg.SyncInterval)

	reclassifyTrigger := make(chan struct{}, 1)
	reclassifier := scheduler.NewReclassifier(coll, loggerClient, cfg.ReclassifyInterval, reclassifyTrigger)

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		RedisClient:       redisClient,
		MemoryIndex:       memIndex,
		Collection:        coll,
		RulesFile:         cfg.RulesFile,
		ReclassifyTrigger: reclassifyTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		memIndex:     memIndex,
		collection:   coll,
		syncer:       syncer,
		reclassifier: reclassifier,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LinkMinder v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LinkMinder %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start index syncer (initial load from Redis, then periodic resync)
	if err := a.syncer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start index syncer: %w", err)
	}
	a.logger.Info("index syncer started",
		logger.Duration("interval", a.cfg.SyncInterval))

	// Seed user rules from file (if configured); runs after the initial
	// sync so seeded rules land on top of whatever Redis already holds.
	if a.cfg.RulesFile != "" {
		if err := a.seedRules(ctx); err != nil {
			return fmt.Errorf("failed to seed rules from %s: %w", a.cfg.RulesFile, err)
		}
	}

	// Start reclassifier (sweeps stale records on a long interval)
	if err := a.reclassifier.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reclassifier: %w", err)
	}
	a.logger.Info("reclassifier started",
		logger.Duration("interval", a.cfg.ReclassifyInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.syncer.Stop()
	a.reclassifier.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("redis connection closed")
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}

// seedRules loads the rules file and upserts every entry, preserving
// declaration order.
func (a *App) seedRules(ctx context.Context) error {
	config, err := rulesfile.NewLoader(a.cfg.RulesFile).Load()
	if err != nil {
		return err
	}
	rules, err := rulesfile.NewMapper().MapRules(config)
	if err != nil {
		return err
	}

	for i := range rules {
		if _, err := a.collection.UpsertRule(ctx, &rules[i]); err != nil {
			return fmt.Errorf("rule %s: %w", rules[i].ID, err)
		}
	}

	a.logger.Info("seeded rules from file",
		logger.String("file", a.cfg.RulesFile),
		logger.Int("count", len(rules)))
	return nil
}
