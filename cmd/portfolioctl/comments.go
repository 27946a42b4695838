package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"portfolioapi/internal/database"
	"portfolioapi/internal/repository/sqlite"
	"portfolioapi/internal/service"
)

func newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Moderate blog comments",
	}
	cmd.AddCommand(newCommentsApproveCmd())
	return cmd
}

func newCommentsApproveCmd() *cobra.Command {
	var reject bool

	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Publish a comment (or hide it again, with --reject)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid comment id: %s", args[0])
			}
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.NewSQLite(cfg.SQLite.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewCommentService(sqlite.NewCommentSQLite(db), service.CommentPolicy{AutoApprove: cfg.Comments.AutoApprove})
			if err := svc.Approve(context.Background(), id, !reject); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %d approved=%t\n", id, !reject)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reject, "reject", false, "Hide the comment instead")
	return cmd
}
