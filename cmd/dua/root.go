package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dua/internal/config"
	"dua/internal/log"
	"dua/pkg/types"
)

var version = "dev"

// rootFlags are the persistent flags shared by every subcommand
type rootFlags struct {
	cfgFile  string
	threads  int
	format   string
	color    string
	sorting  string
	ignore   []string
	debug    bool
	logFile  string
	cfg      *config.Config
	terminal bool
}

// ioErrors is returned when a command finished but some entries could not
// be read, which exits with status 1
type ioErrors struct {
	count uint64
}

func (e *ioErrors) Error() string {
	return fmt.Sprintf("%d entries could not be read", e.count)
}

func resultError(res types.WalkResult) error {
	if res.NumErrors > 0 {
		return &ioErrors{count: res.NumErrors}
	}
	return nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{
		terminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	rootCmd := &cobra.Command{
		Use:   "dua [paths...]",
		Short: "View disk space usage and browse it interactively",
		Long: `dua sums up the disk space used by the given paths.

Without a subcommand it prints one line per path, like "du -s".
Use "dua interactive" to browse the result in the terminal.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, flags, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "config file (default is $HOME/.config/dua/config.yaml)")
	pf.IntVarP(&flags.threads, "threads", "t", 0, "number of directory readers, 0 for one per CPU")
	pf.StringVarP(&flags.format, "format", "f", "", "byte format: metric, binary or bytes")
	pf.StringVar(&flags.color, "color", "", "color mode: auto, none or terminal")
	pf.StringVar(&flags.sorting, "sort", "", "initial sorting: name, size_ascending or size_descending")
	pf.StringSliceVar(&flags.ignore, "ignore", nil, "glob pattern of paths to skip (repeatable)")
	pf.BoolVar(&flags.debug, "debug", false, "log debug messages")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(NewAggregateCmd(flags))
	rootCmd.AddCommand(NewInteractiveCmd(flags))
	rootCmd.AddCommand(NewConfigCmd(flags))

	return rootCmd
}

// load reads the config file and lays the flags that were set on top of it
func (f *rootFlags) load(cmd *cobra.Command) error {
	var err error
	if f.cfgFile != "" {
		f.cfg, err = config.LoadConfigFile(f.cfgFile)
	} else {
		f.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("threads") {
		f.cfg.Walk.Threads = f.threads
	}
	if changed("format") {
		f.cfg.Display.ByteFormat = f.format
	}
	if changed("color") {
		f.cfg.Display.Color = f.color
	}
	if changed("sort") {
		f.cfg.Display.Sorting = f.sorting
	}
	if changed("ignore") {
		f.cfg.Walk.Ignore = f.ignore
	}
	if changed("debug") {
		f.cfg.Log.Debug = f.debug
	}
	if changed("log-file") {
		f.cfg.Log.File = f.logFile
	}
	return f.cfg.Validate()
}

// setupLogging points the logger at the log file if there is one. Without a
// file, quiet discards everything so nothing is written over the terminal UI.
func (f *rootFlags) setupLogging(quiet bool) {
	log.SetDebug(f.cfg.Log.Debug)
	switch {
	case f.cfg.Log.File != "":
		log.Configure(log.WithFile(f.cfg.Log.File))
	case quiet:
		log.Discard()
	}
}

func (f *rootFlags) walkOptions() (types.WalkOptions, error) {
	return f.cfg.WalkOptions(f.terminal)
}
