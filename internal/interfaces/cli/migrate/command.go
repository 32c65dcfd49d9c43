package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"parley/internal/infrastructure/config"
	"parley/internal/infrastructure/database"
	"parley/internal/infrastructure/migration"
	"parley/internal/infrastructure/persistence/migrations"
)

var (
	env         string
	scriptsPath string
	steps       int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVar(&scriptsPath, "scripts", "./migrations", "Path to the SQL migration scripts")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newAutoCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migration.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				fmt.Println("migrations applied")
				return nil
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migration.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				fmt.Printf("rolled back %d migration(s)\n", steps)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version: %d dirty: %v\n", version, dirty)
				return nil
			})
		},
	}
}

// newAutoCommand creates the GORM-based schema sync used in development.
// Production schemas go through the versioned SQL scripts instead.
func newAutoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Sync the schema via GORM auto-migration (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(env)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := database.Init(&cfg.Database); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			if err := migrations.MigrateSupportTables(database.Get()); err != nil {
				return fmt.Errorf("auto-migration failed: %w", err)
			}
			fmt.Println("schema synced")
			return nil
		},
	}
}

func withMigrator(fn func(*migration.Migrator) error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	absPath, err := filepath.Abs(scriptsPath)
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	m, err := migration.New(&cfg.Database, absPath)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
