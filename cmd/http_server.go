package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/account"
	accountpg "github.com/nardosm/ik-registry/internal/account/postgres"
	"github.com/nardosm/ik-registry/internal/auth"
	authpg "github.com/nardosm/ik-registry/internal/auth/postgres"
	"github.com/nardosm/ik-registry/internal/blobstore"
	"github.com/nardosm/ik-registry/internal/department"
	departmentpg "github.com/nardosm/ik-registry/internal/department/postgres"
	"github.com/nardosm/ik-registry/internal/ratelimit"
	"github.com/nardosm/ik-registry/internal/sheet"
	sheetpg "github.com/nardosm/ik-registry/internal/sheet/postgres"
	"github.com/nardosm/ik-registry/internal/transport/rest"
	"github.com/nardosm/ik-registry/pkg/logger"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	blobs, err := blobstore.NewDiskStore(
		config.Uploads.Dir, config.Uploads.PublicPath, config.Uploads.MaxSizeMB, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	var throttle auth.LoginThrottle = ratelimit.NoopLimiter{}
	if config.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		throttle = ratelimit.NewRedisLimiter(client, loginMaxAttempts, loginWindow, lg)
	}

	authRepo := authpg.NewRepository(gormDB)
	issuer := auth.NewJWTTokenIssuer(config.Security.JWTSecret, config.Security.TokenDuration)
	authService := auth.NewService(authRepo, authRepo, issuer, config.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService, throttle, config.Security.SecureCookies)

	accountRepo := accountpg.NewAccountRepository(gormDB)
	accountService := account.NewService(accountRepo, authService, lg)
	accountHandler := account.NewHandler(accountService)

	departmentRepo := departmentpg.NewDepartmentRepository(gormDB)
	departmentService := department.NewService(departmentRepo, lg)
	departmentHandler := department.NewHandler(departmentService, blobs)

	sheetOneRepo := sheetpg.NewRepository[sheet.SheetOne, *sheet.SheetOne](gormDB)
	sheetOneService := sheet.NewService[*sheet.SheetOne](sheetOneRepo, "sheet-one", lg)
	sheetOneHandler := sheet.NewSheetOneHandler(sheetOneService, blobs)

	sheetTwoRepo := sheetpg.NewRepository[sheet.SheetTwo, *sheet.SheetTwo](gormDB)
	sheetTwoService := sheet.NewService[*sheet.SheetTwo](sheetTwoRepo, "sheet-two", lg)
	sheetTwoHandler := sheet.NewSheetTwoHandler(sheetTwoService, blobs)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		authHandler,
		accountHandler,
		departmentHandler,
		sheetOneHandler,
		sheetTwoHandler,
		blobs.Dir(),
		parseOrigins(config.Server.AllowedOrigins),
		lg,
	)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// initDB initializes the database connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// parseOrigins turns the comma-separated config value into a list; "*"
// means any origin.
func parseOrigins(raw string) []string {
	if raw == "" || raw == "*" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
