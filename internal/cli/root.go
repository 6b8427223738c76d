package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/martijn/secondchance/internal/core/repository"
	"github.com/martijn/secondchance/internal/core/service"
	"github.com/martijn/secondchance/internal/infrastructure/imagestore"
	"github.com/martijn/secondchance/internal/infrastructure/sqlstore"
	"github.com/martijn/secondchance/internal/logging"
	"github.com/martijn/secondchance/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     *slog.Logger
	closeLogFn func() error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "secondchance",
	Short: "SecondChance - second-hand item exchange API",
	Long: `SecondChance serves the accounts and listed items of a second-hand
exchange.

It provides:
- User registration, login and profile updates with JWT sessions
- CRUD over listed items with optional image uploads
- SQLite or PostgreSQL record stores
- Local disk or S3 image storage`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, closeLogFn, err = logging.Setup(cfg)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLogFn != nil {
			return closeLogFn()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/secondchance/config.yml)")
}

// Services holds all initialized services
type Services struct {
	DB             *sqlstore.DB
	UserRepo       repository.UserRepository
	ItemRepo       repository.ItemRepository
	AccountService *service.AccountService
	ItemService    *service.ItemService
	// ImageDir is set when uploads live on local disk and must be served.
	ImageDir string
}

// initServices opens the record store and wires the services on top of it
func initServices(ctx context.Context) (*Services, error) {
	dsn := cfg.DatabasePath
	if cfg.StoreDriver == sqlstore.DriverPostgres {
		dsn = cfg.DatabaseURL
	}

	db, err := sqlstore.Open(ctx, cfg.StoreDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	images, imageDir, err := newImageStore(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := sqlstore.NewUserRepository(db)
	itemRepo := sqlstore.NewItemRepository(db)

	// Initialize services
	accountService := service.NewAccountService(
		userRepo,
		service.NewBcryptHasher(service.BcryptCost),
		service.NewJWTService(cfg.JWTSecretKey, cfg.JWTAlgorithm),
	)
	itemService := service.NewItemService(itemRepo, images)

	return &Services{
		DB:             db,
		UserRepo:       userRepo,
		ItemRepo:       itemRepo,
		AccountService: accountService,
		ItemService:    itemService,
		ImageDir:       imageDir,
	}, nil
}

func newImageStore(ctx context.Context) (repository.ImageStore, string, error) {
	switch cfg.ImageStore {
	case "s3":
		store, err := imagestore.NewS3Store(ctx, imagestore.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize image store: %w", err)
		}
		return store, "", nil
	default:
		store, err := imagestore.NewLocalStore(cfg.ImageDir, "/images")
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize image store: %w", err)
		}
		return store, store.Dir(), nil
	}
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
