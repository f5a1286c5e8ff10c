package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hrms/internal/app/server"
	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/logger"
)

var migrateDown bool

var rootCmd = &cobra.Command{
	Use:           "hrms",
	Short:         "HR management service",
	Long:          `Employee accounts, attendance, leave and payroll behind one JSON API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded database migrations",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap HR account from SEED_HR_* settings",
	RunE:  runSeed,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back the latest migration")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return db.Migrate(cmd.Context(), cfg.DatabaseURL, migrateDown)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.SeedHREmail == "" {
		return fmt.Errorf("SEED_HR_EMAIL is required for seeding")
	}

	ctx := cmd.Context()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect failed: %w", err)
	}
	defer pool.Close()

	res, err := db.Seed(ctx, auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.SessionTTL), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !res.Created {
		fmt.Fprintf(out, "HR account already exists: %s\n", res.EmployeeID)
		return nil
	}
	fmt.Fprintf(out, "Created HR account %s\n", res.EmployeeID)
	if res.TemporaryPassword != "" {
		fmt.Fprintf(out, "Temporary password: %s\n", res.TemporaryPassword)
	}
	return nil
}
