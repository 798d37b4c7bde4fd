// Package service implements the inkwell command line.
package service

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inkwell/app/config"
	"inkwell/app/logging"
)

// Version is set at build time with -ldflags "-X inkwell/service.Version=...".
var Version = "dev"

// cli carries the state shared by all subcommands once the root has loaded it.
type cli struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

// NewRootCommand builds the inkwell command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "A small personal blog",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg = cfg
			c.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file (default: ./inkwell.yaml if present)")

	root.AddCommand(
		c.newServeCommand(),
		c.newMigrateCommand(),
		c.newSessionsCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inkwell version %s\n", Version)
		},
	}
}
