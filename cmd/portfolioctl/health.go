package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"portfolioapi/internal/database"
	"portfolioapi/internal/model"
	"portfolioapi/internal/repository/mongodb"
	"portfolioapi/internal/repository/postgres"
	"portfolioapi/internal/repository/sqlite"
	"portfolioapi/internal/service"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe every configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			// A store that cannot even be opened is reported down.
			probes := make([]service.Probe, 0, 3)

			pg := service.Probe{Name: "postgres"}
			if db, err := database.NewPostgres(ctx, cfg.Postgres, cfg.Health.ProbeTimeout); err == nil {
				defer db.Close()
				pg.Pinger = postgres.NewPageViewPostgres(db)
			}
			probes = append(probes, pg)

			sq := service.Probe{Name: "sqlite"}
			if db, err := database.NewSQLite(cfg.SQLite.Path); err == nil {
				defer db.Close()
				sq.Pinger = sqlite.NewCommentSQLite(db)
			}
			probes = append(probes, sq)

			if cfg.Mongo.URI != "" {
				mg := service.Probe{Name: "mongodb"}
				if client, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Health.ProbeTimeout); err == nil {
					defer func() { _ = client.Disconnect(context.Background()) }()
					mg.Pinger = mongodb.NewProjectMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), log)
				}
				probes = append(probes, mg)
			}

			h, err := service.NewHealthService(cfg.Health.ProbeTimeout, probes...).Check(ctx)
			if err != nil {
				return err
			}
			renderHealth(cmd.OutOrStdout(), h)
			if h.Healthy() != h.Total() {
				return fmt.Errorf("%d of %d stores unhealthy", h.Total()-h.Healthy(), h.Total())
			}
			return nil
		},
	}
}

func renderHealth(out io.Writer, h model.DatabaseHealth) {
	names := make([]string, 0, len(h.Stores))
	for name := range h.Stores {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Store", "Status", "Detail"})
	for _, name := range names {
		status := "up"
		if !h.Stores[name] {
			status = "down"
		}
		t.AppendRow(table.Row{name, status, h.Errors[name]})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d up", h.Healthy(), h.Total()), h.CheckedAt.Format(time.RFC3339)})
	t.Render()
}
