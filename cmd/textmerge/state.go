package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codimo/textmerge/internal/merge"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status DIR",
		Short: "Show the conflicts of an unfinished directory merge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := merge.LoadMergeState(args[0])
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve DIR PATH...",
		Short: "Mark conflicted files as resolved",
		Long: `Mark conflicted files of an unfinished directory merge as resolved.
Once every conflict is resolved the merge state is removed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			state, err := merge.LoadMergeState(dir)
			if err != nil {
				return err
			}

			for _, path := range args[1:] {
				if err := state.MarkResolved(path); err != nil {
					return err
				}
			}

			if state.ValidateResolved() == nil {
				if err := merge.ClearMergeState(dir); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All conflicts resolved")
				return nil
			}

			if err := merge.SaveMergeState(dir, state); err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func newAbortCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "abort DIR",
		Short: "Forget an unfinished directory merge",
		Long: `Remove the merge state of DIR. The files written by the merge are left
in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := merge.LoadMergeState(args[0]); err != nil {
				return err
			}
			a.logger.Debug("aborting merge")
			return merge.ClearMergeState(args[0])
		},
	}
}
