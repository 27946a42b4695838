package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolioapi/internal/config"
	"portfolioapi/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "portfolioctl",
	Short:        "portfolioctl - operate the portfolio data service",
	Long:         "portfolioctl validates and publishes static content and inspects the project, analytics and comment stores.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newContentCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newProjectsCmd())
	rootCmd.AddCommand(newCommentsCmd())
}

// loadConfig reads the same configuration as the API server and
// initializes logging from it.
func loadConfig() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return nil, nil, err
	}
	return cfg, logger.Get(), nil
}
