// Questmgr drives the quest manager from a terminal or a script.
// Usage: questmgr [--catalog <dir>] [--db <file>] [--slot <name>] [--script <file>]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts sessionOptions

	root := &cobra.Command{
		Use:           "questmgr",
		Short:         "Quest manager session for a space game",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.catalogSet = cmd.Flags().Changed("catalog")
			opts.dbSet = cmd.Flags().Changed("db")
			opts.slotSet = cmd.Flags().Changed("slot")
			opts.tutorialSet = cmd.Flags().Changed("tutorial")
			opts.seedSet = cmd.Flags().Changed("seed")
			opts.levelSet = cmd.Flags().Changed("log-level")
			return run(cmd.Context(), opts)
		},
	}

	f := root.Flags()
	f.StringVar(&opts.catalog, "catalog", "", "directory of Lua quest definitions")
	f.StringVar(&opts.db, "db", "", "SQLite file holding save slots")
	f.StringVar(&opts.slot, "slot", "", "save slot loaded at start and used by save/load")
	f.StringVar(&opts.script, "script", "", "read commands from a file and echo them")
	f.BoolVar(&opts.tutorial, "tutorial", true, "play the tutorial quests on a fresh save")
	f.Int64Var(&opts.seed, "seed", 0, "seed of the quest generator")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&opts.fresh, "fresh", false, "ignore the stored slot and start a new game")

	return root
}
