package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-uibuilder/pkg/builder"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/spf13/cobra"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		flags  renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [structure.yaml]",
		Short: "Render a structure file to HTML",
		Long: `Render a YAML structure file to HTML.

The file argument defaults to the structure entry of uibuilder.yaml.

Examples:
  uibuilder render admin/settings.yaml
  uibuilder render settings.yaml --strict -o settings.html
  uibuilder render --views-dir ./views --variant dark`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := flags.overrides(cmd)
			if len(args) == 1 {
				overrides.Structure = args[0]
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}
			if cfg.Structure == "" {
				return errors.New("no structure file given and none configured")
			}

			data, err := os.ReadFile(cfg.Structure)
			if err != nil {
				return fmt.Errorf("read structure: %w", err)
			}
			s, err := structure.LoadYAML(data, cfg.Structure)
			if err != nil {
				return err
			}

			logger := g.logger()
			opts, err := cfg.BuilderOptions(logger, nil)
			if err != nil {
				return err
			}
			b, err := builder.New(opts...)
			if err != nil {
				return err
			}

			w, closeFn, err := g.openOutput(output)
			if err != nil {
				return err
			}
			if err := b.EmitStructure(cmd.Context(), w, s); err != nil {
				closeFn()
				return err
			}
			if err := closeFn(); err != nil {
				return err
			}
			if output != "" && output != "-" {
				g.success("Rendered %d elements to %s", s.Len(), output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (stdout if empty)")

	return cmd
}
