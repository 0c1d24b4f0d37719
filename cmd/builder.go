package cmd

import (
	"fmt"
	"net/http"
	"os"

	"dddkit/api"
	"dddkit/api/health"
	apiuser "dddkit/api/user"
	userapp "dddkit/application/user"
	"dddkit/config"
	"dddkit/domain/shared"
	"dddkit/infrastructure/persistence/mysql"
	"dddkit/infrastructure/persistence/retry"
	"dddkit/mapper"
	"dddkit/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder wires configuration, persistence, event mapping and the HTTP
// surface into a runnable App.
type AppBuilder struct {
	cfg           *config.Config
	mapperModules []mapper.Module
	eventBus      *shared.EventBus
}

// NewBuilder creates a new AppBuilder with the default mapper modules.
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:           cfg,
		mapperModules: []mapper.Module{userapp.MapperModule()},
		eventBus:      shared.NewEventBus(),
	}
}

// WithMapperModules replaces the default mapper modules.
func (b *AppBuilder) WithMapperModules(modules ...mapper.Module) *AppBuilder {
	b.mapperModules = modules
	return b
}

// EventBus exposes the in-process event bus so callers can subscribe
// handlers before Build.
func (b *AppBuilder) EventBus() *shared.EventBus {
	return b.eventBus
}

// Build creates the App instance. Initialization failures are fatal.
func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	registry := b.buildMapperRegistry()
	db := b.connectDatabase()

	userRepo := mysql.NewUserRepository(db)
	outbox := mysql.NewOutboxRepository(db)
	uowFactory := mysql.NewUnitOfWorkFactory(db, b.eventBus, retry.FromAppConfig(b.cfg))

	userService := userapp.NewApplicationService(userRepo, uowFactory, registry, outbox)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}

	healthController := health.NewController(b.cfg, sqlDB, registry)
	userController := apiuser.NewController(userService)

	router := api.NewRouter(b.cfg, healthController, userController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}
}

// buildMapperRegistry scans the configured modules and logs the resulting
// mapping table. A service without any mapping is a wiring mistake.
func (b *AppBuilder) buildMapperRegistry() *mapper.Registry {
	registry := mapper.NewRegistry()
	if err := registry.AddModules(b.mapperModules...); err != nil {
		logger.Fatal("Failed to build mapper registry", zap.Error(err))
	}

	for _, entry := range registry.Entries() {
		logger.Info("Event mapping registered",
			zap.String("kind", entry.Kind),
			zap.String("notification", entry.Notification),
			zap.String("mapper", entry.Implementation))
	}

	return registry
}

func (b *AppBuilder) connectDatabase() *gorm.DB {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := mysql.FromAppConfig(b.cfg).Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	// Auto migration in development environment
	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	return db
}
