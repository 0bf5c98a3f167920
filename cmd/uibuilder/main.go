package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-uibuilder/internal/config"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals carries persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "uibuilder",
		Short: "Build admin interfaces from element descriptors",
		Long: `uibuilder renders admin interfaces from YAML structure files.

Sections, components, settings, controls and html blocks are declared in a
structure file, arranged into a tree by their parent keys and rendered
through per-kind view templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", config.FileName, "Project config file")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		viewsCmd(g),
		newCmd(g),
		importCmd(g),
		versionCmd(g),
	)

	return rootCmd
}

// logger returns a text logger on stderr honoring --verbose.
func (g *globals) logger() *slog.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(g.stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the project config (if present) and applies overrides.
func (g *globals) loadConfig(overrides config.Overrides) (*config.Config, error) {
	cfg, err := config.LoadOptional(g.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Apply(overrides)
	return cfg, nil
}

// renderFlags are the config overrides shared by render and serve.
type renderFlags struct {
	viewsDir    string
	scrollClass string
	variant     string
	strict      bool
	sanitize    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.viewsDir, "views-dir", "", "Directory with templates overriding the embedded views")
	cmd.Flags().StringVar(&f.scrollClass, "scroll-class", "", "Class added to scrollable containers")
	cmd.Flags().StringVar(&f.variant, "variant", "", "Theme variant")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on cycles, unknown kinds and missing templates")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", false, "Sanitize literal html blocks")
}

func (f *renderFlags) overrides(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{
		ViewsDir:     f.viewsDir,
		ScrollClass:  f.scrollClass,
		ThemeVariant: f.variant,
	}
	if cmd.Flags().Changed("strict") {
		o.Strict = &f.strict
	}
	if cmd.Flags().Changed("sanitize") {
		o.SanitizeHTML = &f.sanitize
	}
	return o
}

// openOutput returns stdout when path is empty.
func (g *globals) openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return g.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// success prints a success message on stderr so stdout stays pipeable.
func (g *globals) success(format string, args ...any) {
	fmt.Fprintf(g.stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
