package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-uibuilder/pkg/builder"
	"github.com/goliatone/go-uibuilder/pkg/openapi"
	"github.com/spf13/cobra"
)

func importCmd(g *globals) *cobra.Command {
	var (
		flags        renderFlags
		schema       string
		sectionID    string
		sectionTitle string
		rootKey      string
		output       string
		renderHTML   bool
	)

	cmd := &cobra.Command{
		Use:   "import <openapi.yaml>",
		Short: "Generate a structure from an OpenAPI component schema",
		Long: `Turn an OpenAPI component schema into a settings structure. Nested objects
become settings groups and scalar properties become controls.

Examples:
  uibuilder import api.yaml --schema SiteSettings
  uibuilder import api.yaml --schema SiteSettings --section general --title General
  uibuilder import api.yaml --schema SiteSettings --render -o settings.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			doc, err := openapi.Load(ctx, data)
			if err != nil {
				return err
			}
			if schema == "" {
				return fmt.Errorf("--schema is required; available: %s", strings.Join(openapi.SchemaNames(doc), ", "))
			}

			var opts []openapi.Option
			if sectionID != "" {
				opts = append(opts, openapi.WithSection(sectionID, sectionTitle))
			}
			if rootKey != "" {
				opts = append(opts, openapi.WithRootKey(rootKey))
			}
			s, err := openapi.ImportDocument(doc, schema, opts...)
			if err != nil {
				return err
			}

			if !renderHTML {
				return writeStructure(g, s, output)
			}

			cfg, err := g.loadConfig(flags.overrides(cmd))
			if err != nil {
				return err
			}
			builderOpts, err := cfg.BuilderOptions(g.logger(), nil)
			if err != nil {
				return err
			}
			b, err := builder.New(builderOpts...)
			if err != nil {
				return err
			}
			w, closeFn, err := g.openOutput(output)
			if err != nil {
				return err
			}
			if err := b.EmitStructure(ctx, w, s); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&schema, "schema", "", "Component schema to import")
	cmd.Flags().StringVar(&sectionID, "section", "", "Wrap the import in a section with this key")
	cmd.Flags().StringVar(&sectionTitle, "title", "", "Title of the wrapping section")
	cmd.Flags().StringVar(&rootKey, "root-key", "", "Key of the top-level settings group (default: schema name)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&renderHTML, "render", false, "Render HTML instead of writing YAML")

	return cmd
}
