package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/martijn/scoreboard/internal/core/repository"
	"github.com/martijn/scoreboard/internal/core/service"
	"github.com/martijn/scoreboard/internal/infrastructure/database"
	"github.com/martijn/scoreboard/internal/logging"
	"github.com/martijn/scoreboard/pkg/config"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Scoreboard - player accounts and scores for games",
	Long: `Scoreboard is a small game backend.

It provides:
- Player registration with bcrypt-hashed passwords
- Login issuing signed, expiring JWTs
- A token-protected profile and atomic score updates
- PostgreSQL or SQLite storage with embedded migrations`,
	SilenceUsage: true,
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

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, YAML or .env (environment variables override it)")
	rootCmd.AddCommand(versionCmd)
}

// Services holds all initialized services
type Services struct {
	Logger      *slog.Logger
	DB          *database.DB
	UserRepo    repository.UserRepository
	AuthService *service.AuthService

	logOutput io.Closer
}

// initServices opens the database and builds the service graph. With migrate
// set, pending migrations are applied first.
func initServices(ctx context.Context, migrate bool) (*Services, error) {
	s := &Services{}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		out = f
		s.logOutput = f
	}

	logger, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Logger = logger

	// Initialize database
	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, database.Options{
		ConnectRetries: cfg.DatabaseConnectRetries,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	s.DB = db

	if migrate {
		applied, err := db.Migrate(ctx)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database ready", "driver", db.Driver(), "migrations_applied", applied)
	}

	s.UserRepo = database.NewUserRepository(db)

	tokens, err := service.NewTokenService(cfg.JWTSecretKey, cfg.JWTAlgorithm)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.AuthService, err = service.NewAuthService(
		s.UserRepo,
		service.NewBcryptHasher(cfg.BcryptCost),
		tokens,
		service.AuthConfig{
			TokenTTL: cfg.TokenTTL,
			ScorePolicy: service.ScorePolicy{
				Min: cfg.ScoreMinAmount,
				Max: cfg.ScoreMaxAmount,
			},
		},
	)
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.logOutput != nil {
		s.logOutput.Close()
	}
}
