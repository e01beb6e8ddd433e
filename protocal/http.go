package protocal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drive-rag/configs"
	httpAdapter "drive-rag/internal/adapters/input/http"
	"drive-rag/internal/adapters/output/gemini"
	"drive-rag/internal/adapters/output/google"
	"drive-rag/internal/adapters/output/memory"
	"drive-rag/internal/adapters/output/postgres"
	"drive-rag/internal/application"
	"drive-rag/internal/ports/output"
	"drive-rag/pkg/database_driver/gorm"
	"drive-rag/pkg/logger"
	"drive-rag/pkg/oauthstate"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	gormio "gorm.io/gorm"
)

// Session store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Options struct - command line settings
type Options struct {
	Env        string
	ConfigPath string
}

// ServeHTTP func
func ServeHTTP(opts Options) error {
	if opts.ConfigPath == "" {
		opts.ConfigPath = "./configs"
	}
	configs.InitViper(opts.ConfigPath, opts.Env)
	cfg := configs.GetViper()

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Dir: cfg.Log.Dir}); err != nil {
		return err
	}
	logrus.Info(cfg.App.Env)

	sessions, db, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	signer, err := oauthstate.NewSigner(cfg.Google.StateSecret, oauthstate.DefaultTTL)
	if err != nil {
		return fmt.Errorf("google.state_secret: %w", err)
	}

	// Wire up the hexagonal architecture layers
	// Output adapters
	identity := google.NewOAuthProvider(cfg.Google)
	driveFactory := google.NewDriveClientFactory(cfg.Sync.MaxDepth)
	geminiFactory := gemini.NewClientFactory(cfg.Gemini)
	// Application services (use cases)
	authSrv := application.NewAuthService(sessions, identity, signer, cfg.App.FrontendURL)
	driveSrv := application.NewDriveService(sessions, driveFactory)
	syncSrv := application.NewSyncService(sessions, driveFactory, geminiFactory, application.NewIngestionDriver(cfg.Sync))
	chatSrv := application.NewChatService(sessions, geminiFactory, cfg.Session.MaxTurns)
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(authSrv, driveSrv, syncSrv, chatSrv, db)

	app := fiber.New(fiber.Config{
		AppName:      "drive-rag",
		ReadTimeout:  30 * time.Second,
		IdleTimeout:  2 * time.Minute,
		ErrorHandler: fiber.DefaultErrorHandler,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpAdapter.SessionHeader,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	hdl.RegisterRoutes(app)

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go purgeSessions(purgeCtx, sessions, cfg.Session.TTL, cfg.Session.PurgeInterval)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			logrus.Println("Gracefull shut down ...")
			stopPurge()
			if db != nil {
				gorm.DisconnectPostgres(db)
			}
			if err := app.Shutdown(); err != nil {
				logrus.Println("Error when shutdown server: ", err)
			}
		}
	}()

	logrus.Println("Listerning on port: ", cfg.App.Port)
	return app.Listen(":" + cfg.App.Port)
}

// newSessionStore picks the session store for session.driver.
// The returned db is nil for the memory driver.
func newSessionStore(cfg *configs.Config) (output.SessionStore, *gormio.DB, error) {
	switch cfg.Session.Driver {
	case DriverMemory:
		logrus.Warn("Sessions are kept in memory and are lost on restart")
		return memory.NewMemorySessionStore(cfg.Session.TTL), nil, nil
	case DriverPostgres, "":
		conn, err := gorm.ConnectToPostgreSQL(gorm.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			DbName:   cfg.Postgres.DbName,
			SSLMode:  cfg.Postgres.SSLMode,
			Debug:    cfg.App.Debug,
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := postgres.NewSessionStore(conn.Postgres, cfg.Session.TTL)
		if err != nil {
			gorm.DisconnectPostgres(conn.Postgres)
			return nil, nil, err
		}
		return store, conn.Postgres, nil
	default:
		return nil, nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
	}
}

// purgeSessions removes expired sessions every interval until ctx is done
func purgeSessions(ctx context.Context, sessions output.SessionStore, ttl, interval time.Duration) {
	if ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logrus.Errorf("Failed to purge expired sessions: %v", err)
				continue
			}
			if removed > 0 {
				logrus.Infof("Purged %d expired sessions", removed)
			}
		}
	}
}
