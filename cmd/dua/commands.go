package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dua/internal/aggregate"
	"dua/internal/config"
	"dua/internal/log"
	"dua/internal/tui"
)

// NewAggregateCmd creates the aggregate command
func NewAggregateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "aggregate [paths...]",
		Aliases: []string{"a"},
		Short:   "Print the total size of each path",
		Long:    `Scan every path and print its total size, followed by a grand total when more than one path is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, flags, args)
		},
	}
}

func runAggregate(cmd *cobra.Command, flags *rootFlags, args []string) error {
	flags.setupLogging(false)
	opts, err := flags.walkOptions()
	if err != nil {
		return err
	}

	res, err := aggregate.Aggregate(cmd.Context(), cmd.OutOrStdout(), opts, args)
	if err != nil {
		return err
	}
	return resultError(res)
}

// NewInteractiveCmd creates the interactive command
func NewInteractiveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive [paths...]",
		Aliases: []string{"i"},
		Short:   "Browse disk usage in the terminal",
		Long: `Scan the given paths (the current directory by default) and browse the result.

Keys: j/k move, o opens the selected directory, u goes to the parent,
s toggles sorting by size, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.setupLogging(true)
			opts, err := flags.walkOptions()
			if err != nil {
				return err
			}

			log.LogWithFields(log.F("inputs", args), log.F("sorting", opts.Sorting.String())).Debug("starting interactive session")
			res, err := tui.Run(cmd.Context(), opts, args)
			if err != nil {
				return err
			}
			return resultError(res)
		},
	}
}

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.cfgFile
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if exists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after merging the config file, defaults and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(flags.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
