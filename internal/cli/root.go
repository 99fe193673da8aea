// Package cli implements the lvlplanar command-line interface.
//
// The CLI reads graphs from plain edge-list files (one "u v" pair per line,
// arbitrary string labels, '#' comments) and exposes the planarity pipeline:
//
//   - check: planarity verdict, with Kuratowski certificate edges on failure
//   - embed: compute a combinatorial embedding and print the rotation system
//   - maxface: embed maximizing the size of one face, optionally anchored
//   - render: emit Graphviz DOT, or SVG via the embedded graphviz engine
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a TOML settings file. Loggers travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the information displayed by --version; main injects the
// values via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the lvlplanar CLI and returns an error if any command fails.
func Execute() error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "lvlplanar",
		Short:        "lvlplanar tests planarity and computes graph embeddings",
		Long:         `lvlplanar reads edge-list graphs and runs the planarity pipeline: PQ-tree planarity testing, Kuratowski certificates, combinatorial embedding, and maximum-face embedding.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("lvlplanar %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newEmbedCmd())
	root.AddCommand(newMaxfaceCmd())
	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(context.Background())
}
