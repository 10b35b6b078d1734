package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fixdesk/fixdesk/internal/infrastructure/auth"
	"github.com/fixdesk/fixdesk/internal/infrastructure/config"
	"github.com/fixdesk/fixdesk/internal/infrastructure/database"
	"github.com/fixdesk/fixdesk/internal/infrastructure/repository"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/db"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

const defaultFixturesPath = "./configs/seed.yaml"

var (
	env          string
	configPath   string
	fixturesPath string
	resetOnly    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load demo data",
		Long: `Delete all notifications, tickets and users, then create a demo tenant,
manager and technician with a few tickets in different states.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&fixturesPath, "fixtures", "f", "", "Fixtures file (default: ./configs/seed.yaml, else built-in data)")
	cmd.Flags().BoolVar(&resetOnly, "reset-only", false, "Only clear the database")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if env == constants.EnvProduction {
		return fmt.Errorf("refusing to seed the %s database", env)
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, true); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = database.Close() }()

	gdb := database.Get()
	seeder := NewSeeder(
		repository.NewUserRepository(gdb, log),
		repository.NewTicketRepository(gdb),
		repository.NewActivityLogRepository(gdb),
		repository.NewNotificationRepository(gdb),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		db.NewTransactionManager(gdb),
		log,
	)

	if resetOnly {
		if err := seeder.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database cleared")
		return nil
	}

	fixtures, err := LoadFixtures(resolveFixturesPath())
	if err != nil {
		return err
	}

	result, err := seeder.Run(cmd.Context(), fixtures)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d tickets, %d activity logs\n",
		result.Users, result.Tickets, result.Logs)
	return nil
}

// resolveFixturesPath returns the explicit path, the default file when it
// exists, or empty for the built-in set.
func resolveFixturesPath() string {
	if fixturesPath != "" {
		return fixturesPath
	}
	if _, err := os.Stat(defaultFixturesPath); err != nil {
		return ""
	}
	return defaultFixturesPath
}
