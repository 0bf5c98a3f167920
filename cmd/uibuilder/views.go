package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-uibuilder/internal/config"
	"github.com/goliatone/go-uibuilder/pkg/render"
	"github.com/goliatone/go-uibuilder/pkg/views"
	"github.com/spf13/cobra"
)

func viewsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Inspect or export the embedded templates",
	}
	cmd.AddCommand(viewsListCmd(g), viewsExportCmd(g))
	return cmd
}

func viewsListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List views and element types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := render.DefaultViews()
			fmt.Fprintln(g.stdout, "Views:")
			for _, name := range v.Names() {
				tpl, _ := v.Template(name)
				fmt.Fprintf(g.stdout, "  %-26s %s\n", name, tpl)
			}
			registry, err := config.ElementRegistry()
			if err != nil {
				return err
			}
			fmt.Fprintln(g.stdout, "Elements:")
			for _, name := range registry.Names() {
				fmt.Fprintf(g.stdout, "  %s\n", name)
			}
			return nil
		},
	}
}

func viewsExportCmd(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Copy the embedded templates into a directory for customisation",
		Long: `Copy the embedded templates into dir. Point views_dir (or --views-dir) at
the directory afterwards; templates missing there fall back to the embedded set.

Examples:
  uibuilder views export ./views
  uibuilder views export ./views --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := exportTemplates(views.TemplatesFS(), args[0], force)
			if err != nil {
				return err
			}
			g.success("Exported %d templates to %s", n, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}

func exportTemplates(src fs.FS, dir string, force bool) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}
