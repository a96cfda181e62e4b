// Command initdb creates the tasks table when it is missing and seeds sample
// tasks into an empty table. It exits 0 on success and 1 on any error.
package main

import (
	"context"
	"os"

	"task_tracker/internal/config"
	"task_tracker/internal/db"
	"task_tracker/internal/initdb"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"

	"github.com/spf13/cobra"
)

var flagEnvFile string

var rootCmd = &cobra.Command{
	Use:           "initdb",
	Short:         "Create and seed the tasks table",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var envFiles []string
		if flagEnvFile != "" {
			envFiles = append(envFiles, flagEnvFile)
		}
		cfg, err := config.Load(envFiles...)
		if err != nil {
			return err
		}
		logger.Init(cfg.LogLevel, cfg.LogJSON)

		ctx := cmd.Context()
		pool, err := db.Open(ctx, cfg.DSN())
		if err != nil {
			return err
		}
		defer pool.Close()

		rep, err := initdb.Run(ctx, repository.NewSchemaRepository(pool), logger.Get())
		if err != nil {
			return err
		}
		logger.Info("database initialization complete", "created", rep.Created, "tasks", rep.Count, "seeded", rep.Seeded)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "env file to load (default: .env in the working directory)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("database initialization failed", "error", err)
		os.Exit(1)
	}
}
