package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"portfolioapi/internal/database"
	"portfolioapi/internal/model"
	"portfolioapi/internal/repository/postgres"
	"portfolioapi/internal/service"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Query page view analytics",
	}
	cmd.AddCommand(newStatsPopularCmd())
	return cmd
}

func newStatsPopularCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Show the most viewed pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := database.NewPostgres(ctx, cfg.Postgres, 10*time.Second)
			if err != nil {
				return err
			}
			defer db.Close()

			pages, err := service.NewAnalyticsService(postgres.NewPageViewPostgres(db)).PopularPages(ctx, limit)
			if err != nil {
				return err
			}
			return renderPopular(cmd.OutOrStdout(), pages, format)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultPopularLimit, "Maximum number of pages")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func renderPopular(out io.Writer, pages []model.PageCount, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	case "table":
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Path", "Views"})
		for i, p := range pages {
			t.AppendRow(table.Row{i + 1, p.Path, p.Views})
		}
		t.Render()
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}
