package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codimo/textmerge/internal/engine"
	"github.com/codimo/textmerge/internal/merge"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		output     string
		style      string
		differName string
		engineName string
	)

	cmd := &cobra.Command{
		Use:   "merge BASE REMOTE LOCAL",
		Short: "Merge two variants of a base file",
		Long: `Merge the changes REMOTE and LOCAL made to BASE.

The merged text is written to stdout or to the file given with -o. When the
changes collide the text carries conflict markers, a summary is printed to
stderr and the exit status is 1.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("style") {
				a.cfg.Style = merge.Style(style)
			}
			if cmd.Flags().Changed("differ") {
				a.cfg.Differ = differName
			}
			if cmd.Flags().Changed("engine") {
				a.cfg.Engine = engineName
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			inputs, err := readInputs(args)
			if err != nil {
				return err
			}
			base, remote, local := inputs[0], inputs[1], inputs[2]

			m, err := engine.New(a.cfg, a.logger)
			if err != nil {
				return err
			}

			a.logger.Debug("merging",
				zap.String("base", args[0]),
				zap.String("remote", args[1]),
				zap.String("local", args[2]),
				zap.String("engine", a.cfg.Engine),
			)

			result, err := merge.ThreeWayMerge(m, base, remote, local, merge.DefaultMarkers(base, remote, local, a.cfg.Style))
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), output, result.Content); err != nil {
				return err
			}

			if result.HasConflict {
				printConflictSummary(cmd.ErrOrStderr(), result.Conflicts)
				return errConflicts
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the merged text to FILE instead of stdout")
	cmd.Flags().StringVar(&style, "style", string(merge.StyleMerge), "Conflict marker style: merge or diff3")
	cmd.Flags().StringVar(&differName, "differ", "", "Line differ: textdiff, myers or difflib")
	cmd.Flags().StringVar(&engineName, "engine", "", "Merge engine: hunk or git")

	return cmd
}

func readInputs(paths []string) ([]string, error) {
	inputs := make([]string, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs[i] = string(data)
	}
	return inputs, nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
