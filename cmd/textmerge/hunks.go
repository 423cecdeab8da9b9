package main

import (
	"github.com/spf13/cobra"

	"github.com/codimo/textmerge/internal/diff"
	"github.com/codimo/textmerge/internal/merge"
)

func newHunksCmd(a *app) *cobra.Command {
	var differName string

	cmd := &cobra.Command{
		Use:   "hunks OLD NEW",
		Short: "Show the hunks that turn OLD into NEW",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("differ") {
				differName = a.cfg.Differ
			}
			differ, err := diff.New(differName)
			if err != nil {
				return err
			}

			inputs, err := readInputs(args)
			if err != nil {
				return err
			}

			hunks, err := merge.NewHunkMerger(merge.WithDiffer(differ)).Hunks(inputs[0], inputs[1])
			if err != nil {
				return err
			}

			printHunks(cmd.OutOrStdout(), hunks)
			return nil
		},
	}

	cmd.Flags().StringVar(&differName, "differ", "", "Line differ: textdiff, myers or difflib")

	return cmd
}
