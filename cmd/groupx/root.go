package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/groupx"
	"github.com/comalice/groupx/internal/config"
)

// app holds the state shared by every command: flags, the loaded config,
// the logger and the explorer.
type app struct {
	configPath string
	libraries  []string
	noBuiltin  bool
	verbose    bool
	format     string

	cfg      *config.Config
	logger   *zap.Logger
	explorer *groupx.Explorer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "groupx",
		Short:         "Explore finite groups",
		Long:          "groupx inspects finite groups given by name from the reference library or by definition file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a groupx YAML config")
	pf.StringArrayVar(&a.libraries, "library", nil, "directory of definition files to add to the library (repeatable)")
	pf.BoolVar(&a.noBuiltin, "no-builtin", false, "skip the builtin reference groups")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&a.format, "format", "f", "text", "output format: text, json, yaml, or dot for lattice and solvable")

	root.AddCommand(
		newInfoCmd(a),
		newSubgroupsCmd(a),
		newSolvableCmd(a),
		newLatticeCmd(a),
		newClassesCmd(a),
		newLibraryCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	switch a.format {
	case "text", "json", "yaml", "dot":
	default:
		return fmt.Errorf("unknown format %q", a.format)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.Library.Dirs = append(cfg.Library.Dirs, a.libraries...)
	if a.noBuiltin {
		cfg.Library.Builtin = false
	}
	a.cfg = cfg

	logger, err := cfg.Logger(a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	explorer, err := groupx.FromConfig(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	a.explorer = explorer
	logger.Debug("library loaded", zap.Int("groups", explorer.Library().Len()))
	return nil
}

// session opens the group named by the single positional argument.
func (a *app) session(args []string) (*groupx.Session, error) {
	return a.explorer.OpenName(args[0])
}
