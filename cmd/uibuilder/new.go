package main

import (
	"errors"

	"github.com/goliatone/go-uibuilder/internal/config"
	"github.com/goliatone/go-uibuilder/pkg/scaffold"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/spf13/cobra"
)

func newCmd(g *globals) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a structure file interactively",
		Long: `Prompt for sections, components, settings, controls and html blocks and
write the resulting structure as YAML.

Examples:
  uibuilder new
  uibuilder new -o admin/settings.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := config.ElementRegistry()
			if err != nil {
				return err
			}
			wizard := scaffold.NewWizard(scaffold.NewSurveyDriver(),
				scaffold.WithLogger(g.logger()),
				scaffold.WithElements(registry),
			)
			return runScaffold(cmd, g, wizard, output)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (stdout if empty)")

	return cmd
}

func runScaffold(cmd *cobra.Command, g *globals, wizard *scaffold.Wizard, output string) error {
	s, err := wizard.Run(cmd.Context())
	if errors.Is(err, scaffold.ErrAborted) {
		return errors.New("scaffold aborted")
	}
	if err != nil {
		return err
	}
	return writeStructure(g, s, output)
}

// writeStructure encodes s as YAML to output or stdout.
func writeStructure(g *globals, s *structure.Structure, output string) error {
	data, err := structure.EncodeYAML(s)
	if err != nil {
		return err
	}
	w, closeFn, err := g.openOutput(output)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if output != "" && output != "-" {
		g.success("Wrote %d elements to %s", s.Len(), output)
	}
	return nil
}
