package main

import (
	"github.com/spf13/cobra"

	"github.com/codimo/textmerge/internal/engine"
	"github.com/codimo/textmerge/internal/merge"
	"github.com/codimo/textmerge/internal/tree"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		output string
		jobs   int
		style  string
	)

	cmd := &cobra.Command{
		Use:   "tree BASE_DIR REMOTE_DIR LOCAL_DIR -o OUT_DIR",
		Short: "Merge two variants of a base directory",
		Long: `Merge the changes REMOTE_DIR and LOCAL_DIR made to BASE_DIR into OUT_DIR.

Conflicted files are written with markers and recorded in OUT_DIR/.textmerge.
Use "textmerge status", "textmerge resolve" and "textmerge abort" on OUT_DIR
to follow up.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				a.cfg.Jobs = jobs
			}
			if cmd.Flags().Changed("style") {
				a.cfg.Style = merge.Style(style)
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			m, err := engine.New(a.cfg, a.logger)
			if err != nil {
				return err
			}

			result, err := tree.Merge(cmd.Context(), m, tree.Options{
				Base:    args[0],
				Remote:  args[1],
				Local:   args[2],
				Output:  output,
				Jobs:    a.cfg.Jobs,
				Markers: merge.MarkerOptions{Style: a.cfg.Style},
				Engine:  a.cfg.Engine,
				Logger:  a.logger.Named("tree"),
			})
			if err != nil {
				return err
			}

			printTreeResult(cmd.OutOrStdout(), result)
			if result.HasConflicts() {
				return errConflicts
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory receiving the merged files")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of files merged in parallel")
	cmd.Flags().StringVar(&style, "style", string(merge.StyleMerge), "Conflict marker style: merge or diff3")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
