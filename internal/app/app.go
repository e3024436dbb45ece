package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/favtube/internal/config"
	"github.com/MrSnakeDoc/favtube/internal/favorites"
	"github.com/MrSnakeDoc/favtube/internal/httpserver"
	"github.com/MrSnakeDoc/favtube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/favtube/internal/logger"
	"github.com/MrSnakeDoc/favtube/internal/redis"
	"github.com/MrSnakeDoc/favtube/internal/scheduler"
	filestore "github.com/MrSnakeDoc/favtube/internal/store/file"
	memstore "github.com/MrSnakeDoc/favtube/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/favtube/internal/store/redis"
	"github.com/MrSnakeDoc/favtube/internal/utils"
	"github.com/MrSnakeDoc/favtube/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	favorites   *favorites.Service
	importer    *scheduler.ImportReloader
	flusher     *scheduler.Flusher
}

// backend is the selected persister plus its optional connectivity check.
type backend struct {
	persister favorites.Persister
	ping      func(context.Context) error
	client    *goredis.Client
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	b, err := openBackend(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	loggerClient.Info("favorites store selected",
		logger.String("store", b.persister.Name()))

	svc := favorites.NewService(b.persister, loggerClient.With(logger.String("component", "favorites")), time.Now)

	// Restore the saved collection; any failure starts empty.
	syncer := scheduler.NewStoreSyncer(svc, b.persister.Name(), loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to load saved favorites, starting empty",
			logger.Error(err))
	}

	// Initialize importer (if import file is configured)
	var importer *scheduler.ImportReloader
	var reloadTrigger chan struct{}
	if cfg.ImportFile != "" {
		loggerClient.Info("import file configured, initializing importer",
			logger.String("file", cfg.ImportFile))
		reloadTrigger = make(chan struct{}, 1)
		importer = scheduler.NewImportReloader(
			cfg.ImportFile,
			svc,
			loggerClient,
			cfg.ImportInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("import file not configured, import disabled")
	}

	flusher := scheduler.NewFlusher(svc, loggerClient, cfg.FlushInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		Favorites:     svc,
		StorePing:     b.ping,
		ImportFile:    cfg.ImportFile,
		ReloadTrigger: reloadTrigger,
		Validate:      validator.New(),
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: b.client,
		favorites:   svc,
		importer:    importer,
		flusher:     flusher,
	}, nil
}

// openBackend builds the persister selected by cfg.Store.
// Redis is connected eagerly so a misconfiguration fails fast.
func openBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (backend, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return backend{}, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store := redisstore.NewStore(client, cfg.StorageKey)
		if ts, err := store.UpdatedAt(ctx); err != nil {
			log.Warn("failed to read last save time", logger.Error(err))
		} else if !ts.IsZero() {
			log.Info("redis favorites found", logger.Time("last_save", ts))
		}
		return backend{persister: store, ping: store.Ping, client: client}, nil

	case config.StoreMemory:
		log.Warn("memory store selected, favorites are lost on restart")
		return backend{persister: memstore.NewStore()}, nil

	default:
		return backend{persister: filestore.NewStore(cfg.DataFile)}, nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting favtube v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start importer (imports once and starts periodic refresh)
	if a.importer != nil {
		if err := a.importer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start importer: %w", err)
		}
		a.logger.Info("importer started",
			logger.Duration("interval", a.cfg.ImportInterval))
	}

	if err := a.flusher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start flusher: %w", err)
	}
	a.logger.Info("flusher started",
		logger.Duration("interval", a.cfg.FlushInterval))

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

	if a.importer != nil {
		a.importer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Last chance to persist a change whose save failed earlier.
	if !a.flusher.Stop(shutdownCtx) {
		a.logger.Error("favorites not persisted on shutdown",
			logger.Int("count", a.favorites.Status().Count))
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "redis")
	}

	a.logger.Info("✅ favtube stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
