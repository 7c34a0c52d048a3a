package cmd

import (
	"atomic_sensei_backend/internal/app"
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atomic-sensei",
	Short: "Personalised learning API",
	Long:  "Atomic Sensei serves AI generated roadmaps, lessons and quizzes and schedules spaced reminders.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs", "Directory holding config.yaml")
	rootCmd.Flags().Bool("migrate", false, "Migrate the database schema on startup, even in release mode")
	serveCmd.Flags().Bool("migrate", false, "Migrate the database schema on startup, even in release mode")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

func runServer(cmd *cobra.Command) error {
	cfg, dir, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.ForceMigrate, _ = cmd.Flags().GetBool("migrate")

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.ConfigDir = dir
	application.Run()
	return nil
}
