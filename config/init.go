package config

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"checkin/services"
	"checkin/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// App holds the components built once at startup and injected into routes and jobs
type App struct {
	Router   *gin.Engine
	Melody   *melody.Melody
	Cron     *cron.Cron
	Store    services.RecordStore
	Uploader services.MediaUploader
	Metrics  *services.Metrics
	Service  *services.CheckinService

	closers []func(context.Context) error
}

// InitApp builds the router and every external client. Backend connection
// problems are logged and do not stop startup.
func InitApp(ctx context.Context, cfg *Config, log logger.Logger, reg prometheus.Registerer) (*App, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AllowAllOrigins = true
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	app := &App{
		Router:  router,
		Melody:  melody.New(),
		Cron:    cron.New(),
		Metrics: services.MustNewMetrics(reg),
	}

	store, err := app.initStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app.Store = app.withCache(ctx, cfg, store, log)

	app.Uploader, err = initUploader(cfg)
	if err != nil {
		return nil, err
	}

	app.Service = services.NewCheckinService(services.CheckinServiceOptions{
		Store:             app.Store,
		Uploader:          app.Uploader,
		Events:            services.NewMelodyPublisher(app.Melody, log),
		Metrics:           app.Metrics,
		Logger:            log,
		CompensateOrphans: cfg.CompensateOrphans,
	})

	log.Info("components initialized (store=%s upload=%s)", cfg.StoreBackend, cfg.UploadMode)
	return app, nil
}

func (a *App) initStore(ctx context.Context, cfg *Config, log logger.Logger) (services.RecordStore, error) {
	var store services.RecordStore

	switch cfg.StoreBackend {
	case StoreMemory:
		log.Warn("using in-memory record store; records are lost on restart")
		return services.NewMemoryStore(), nil

	case StoreMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		store = services.NewMongoStore(client.Database(cfg.MongoDatabase), cfg.StoreTimeout)

	case StorePostgres:
		db, err := ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		}
		pg := services.NewPostgresStore(db, cfg.StoreTimeout)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("migrate %s table: %v", services.CollectionName, err)
		}
		store = pg

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Error("record store (%s) unreachable, serving anyway: %v", cfg.StoreBackend, err)
	} else {
		log.Info("record store (%s) connected", cfg.StoreBackend)
	}
	return store, nil
}

func (a *App) withCache(ctx context.Context, cfg *Config, store services.RecordStore, log logger.Logger) services.RecordStore {
	if cfg.RedisAddr == "" {
		return store
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rdb, err := ConnectRedis(pingCtx, cfg)
	if err != nil {
		log.Error("redis at %s unreachable, listing cache disabled: %v", cfg.RedisAddr, err)
		return store
	}
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	log.Info("listing cache enabled (redis %s, ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	return services.NewCachedStore(store, services.NewRedisCache(rdb), cfg.CacheTTL, log)
}

func initUploader(cfg *Config) (services.MediaUploader, error) {
	switch cfg.UploadMode {
	case UploadSDK:
		cld, err := ConnectCloudinary(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewCloudinaryUploader(cld, cfg.CloudinaryFolder, cfg.CloudinaryPreset), nil
	case UploadForm:
		return services.NewFormPostUploader(services.FormUploaderConfig{
			BaseURL:   cfg.CloudinaryUploadURL,
			CloudName: cfg.CloudName,
			Preset:    cfg.CloudinaryPreset,
			Folder:    cfg.CloudinaryFolder,
		}), nil
	default:
		return nil, fmt.Errorf("unknown UPLOAD_MODE %q", cfg.UploadMode)
	}
}

// InitWebSocket mounts the live event feed
func InitWebSocket(router *gin.Engine, m *melody.Melody, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			log.Warn("websocket upgrade: %v", err)
			if !c.Writer.Written() {
				c.Status(http.StatusBadRequest)
			}
		}
	})
}

// Close stops background jobs and releases backend clients
func (a *App) Close(ctx context.Context) {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.Melody != nil {
		_ = a.Melody.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i](ctx)
	}
}
