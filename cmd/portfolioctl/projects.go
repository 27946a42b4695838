package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"portfolioapi/internal/database"
	"portfolioapi/internal/repository/mongodb"
	"portfolioapi/internal/service"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage dynamic projects",
	}
	cmd.AddCommand(newProjectsFeatureCmd())
	return cmd
}

func newProjectsFeatureCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "feature <slug>",
		Short: "Mark a project as featured (or not, with --off)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Mongo.URI == "" {
				return errors.New("MONGODB_URI is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			store := mongodb.NewProjectMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), log)
			p, err := service.NewProjectService(store).SetFeatured(ctx, args[0], !off)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s featured=%t\n", p.Slug, p.Featured)
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Remove the featured flag")
	return cmd
}
