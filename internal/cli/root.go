// Package cli wires the command line surface: one positional argument
// naming the executable to inspect, plus a version subcommand.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sunxfancy/ExeViewer/internal/config"
	"github.com/sunxfancy/ExeViewer/internal/deps"
	"github.com/sunxfancy/ExeViewer/internal/elffile"
	"github.com/sunxfancy/ExeViewer/internal/loader"
	"github.com/sunxfancy/ExeViewer/internal/logging"
	"github.com/sunxfancy/ExeViewer/internal/tui"
	"github.com/sunxfancy/ExeViewer/pkg/version"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "exeviewer <executable>",
	Short: "ExeViewer - interactive terminal inspector for ELF executables",
	Long: `Inspect an ELF executable from the terminal: file summary,
section headers, on-demand disassembly of the static and dynamic
symbol tables, and the dynamic library dependencies.

The argument is a path or a bare command name; bare names are
searched on PATH and script wrappers are followed to their
interpreter.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	rootCmd.AddCommand(newVersionCmd())
}

func run(name string) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, closer, err := logging.FromConfig(cfg.Log)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	path, data, err := loader.Find(name)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("loaded executable")

	f, err := elffile.Open(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	info := tui.NewSummaryInfo(path, stat.Size(), stat.ModTime(), loader.SHA256(data), f)

	list := deps.Collect(f, logger)
	interp, _ := f.Interpreter()
	list.Resolve(interp, path)

	app := tui.NewApp(info, f, list, tui.NewTheme(cfg.UI.Theme), logger)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("ExeViewer version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
