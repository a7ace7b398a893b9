package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/andreishark/api-backend-ecommerce/config"
	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/images"
	"github.com/andreishark/api-backend-ecommerce/internal/repository"
	"github.com/andreishark/api-backend-ecommerce/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	store     *store.Store
	imageMgr  *images.Manager

	catalogItems repository.CatalogItemRepository
	users        repository.UserRepository
	customers    repository.CustomerRepository
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ StoreProvider   = (*Application)(nil)
	_ ImagesProvider  = (*Application)(nil)
	_ RepositoryOwner = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *store.Store {
	return a.store
}

func (a *Application) Images() *images.Manager {
	return a.imageMgr
}

func (a *Application) CatalogItems() repository.CatalogItemRepository {
	return a.catalogItems
}

func (a *Application) Users() repository.UserRepository {
	return a.users
}

func (a *Application) Customers() repository.CustomerRepository {
	return a.customers
}

// OverrideRepositories replaces the repository implementations (used in tests).
func (a *Application) OverrideRepositories(
	catalogItems repository.CatalogItemRepository,
	users repository.UserRepository,
	customers repository.CustomerRepository,
) {
	a.catalogItems = catalogItems
	a.users = users
	a.customers = customers
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Connect the document store
	a.store, err = store.Connect(cfg.Database)
	if err != nil {
		return err
	}
	zap.S().Infof("Document store connection successful, url: %s", cfg.Database.URL)

	a.imageMgr, err = images.NewManager(cfg.Web.ImageDir, cfg.Web.ImagePrefix)
	if err != nil {
		return err
	}

	a.catalogItems = repository.NewCatalogItemRepository(a.store)
	a.users = repository.NewUserRepository(a.store)
	a.customers = repository.NewCustomerRepository(a.store)

	a.checkAdminUser()
	return nil
}

// checkAdminUser seeds the default admin credential record on first boot.
func (a *Application) checkAdminUser() {
	const adminEmail = "admin@localhost"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := a.users.GetByEmail(ctx, adminEmail)
	if err == nil {
		return
	}
	if err != repository.ErrNotFound {
		zap.L().Error("failed to query admin user", zap.Error(err))
		return
	}

	admin := domain.UserCreate{
		Username: "admin",
		Password: "changeme",
		Email:    adminEmail,
		Role:     "admin",
	}.User()
	if _, err := a.users.Create(ctx, admin); err != nil {
		zap.L().Error("failed to create default admin user", zap.Error(err))
		return
	}
	zap.L().Info("initialized default admin account", zap.String("username", admin.Username))
}

// Release releases application resources
func (a *Application) Release() {
	if a.store != nil {
		a.store.Close()
	}
	_ = zap.L().Sync()
}
