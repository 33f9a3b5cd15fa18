package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/export"
	"shareit/internal/logging"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "shareit-admin",
		Short: "Operational tooling for the shareit service",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	rootCmd.AddCommand(exportCmd(), backupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bookings report as an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			db, err := database.NewDB(cfg.Database.Path, logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			dir := outDir
			if dir == "" {
				dir = cfg.Exports.Path
			}

			rows, err := db.GetBookingReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("build report: %w", err)
			}
			path, err := export.WriteBookingsReport(dir, rows)
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			logger.Info().Str("path", path).Int("rows", len(rows)).Msg("bookings report written")
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to exports.path from config)")
	return cmd
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Create a database backup and prune old ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			svc := database.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
			if err := svc.PerformBackup(); err != nil {
				return fmt.Errorf("backup: %w", err)
			}
			svc.CleanupOldBackups()
			return nil
		},
	}
}

func setup() (*config.Config, *zerolog.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "admin")

	cleanup := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}
	return cfg, &logger, cleanup, nil
}
