package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"portfolioapi/internal/content"
	"portfolioapi/internal/storage"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Validate and publish static content files",
	}
	cmd.AddCommand(newContentCheckCmd())
	cmd.AddCommand(newContentPushCmd())
	return cmd
}

func newContentCheckCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every content file against its schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				cfg, _, err := loadConfig()
				if err != nil {
					return err
				}
				dir = cfg.Content.Dir
			}
			return checkContent(cmd.Context(), content.DirSource{Dir: dir}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Content directory (defaults to CONTENT_DIR)")
	return cmd
}

// checkContent loads every content name from src, prints one row per file
// and fails when any file is invalid.
func checkContent(ctx context.Context, src content.Source, out io.Writer) error {
	cache := content.NewCache(content.NewLoader(src))
	counts := map[string]func(context.Context) (int, error){
		content.NameProfile: func(ctx context.Context) (int, error) {
			_, err := cache.Profile(ctx)
			return 1, err
		},
		content.NameProjects: func(ctx context.Context) (int, error) {
			v, err := cache.Projects(ctx)
			return len(v), err
		},
		content.NameTimeline: func(ctx context.Context) (int, error) {
			v, err := cache.Timeline(ctx)
			return len(v), err
		},
		content.NameSkills: func(ctx context.Context) (int, error) {
			v, err := cache.Skills(ctx)
			return len(v), err
		},
		content.NameCertifications: func(ctx context.Context) (int, error) {
			v, err := cache.Certifications(ctx)
			return len(v), err
		},
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Status", "Entries", "Detail"})

	failed := 0
	for _, name := range content.Names {
		n, err := counts[name](ctx)
		if err != nil {
			failed++
			t.AppendRow(table.Row{content.FileName(name), "invalid", "-", err.Error()})
			continue
		}
		t.AppendRow(table.Row{content.FileName(name), "ok", n, ""})
	}
	t.Render()

	if failed > 0 {
		return fmt.Errorf("%d content file(s) invalid", failed)
	}
	return nil
}

func newContentPushCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Validate content files and upload them to the object store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Content.Dir
			}
			// Never publish content the server would refuse to start with.
			if err := checkContent(cmd.Context(), content.DirSource{Dir: dir}, io.Discard); err != nil {
				return err
			}
			st, err := storage.NewMinIO(cmd.Context(), cfg.MinIO, true)
			if err != nil {
				return err
			}
			return pushContent(cmd.Context(), st, dir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Content directory (defaults to CONTENT_DIR)")
	return cmd
}

func pushContent(ctx context.Context, st storage.Storage, dir string, out io.Writer) error {
	for _, name := range content.Names {
		file := content.FileName(name)
		f, err := os.Open(filepath.Join(dir, file))
		if err != nil {
			return err
		}
		fi, err := f.Stat()
		if err != nil {
			f.Close()
			return err
		}
		info, err := st.Put(ctx, file, f, storage.PutObjectOptions{Size: fi.Size(), ContentType: "application/yaml"})
		f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "uploaded %s (%d bytes)\n", info.Key, info.Size)
	}
	return nil
}
