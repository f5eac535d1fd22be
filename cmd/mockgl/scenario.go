package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/scenario"
)

func newScenarioCommand(opts *rootOptions) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "scenario FILE...",
		Short: "Run scenario files",
		Long: `Run YAML scenario files, each on a fresh context.

Each scenario selects its own version and policy; the global flags only
affect logging. The command fails when any expectation fails.

Exit codes:
  0 - every scenario passed
  1 - one or more scenarios failed
  2 - a file could not be read or parsed`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				s, err := scenario.Load(path)
				if err != nil {
					return commandError(path, err)
				}
				res, err := scenario.Run(s, mockgl.WithLogger(opts.log))
				if err != nil {
					return commandError(path, err)
				}
				printResult(out, res, trace)
				if !res.Pass {
					failed++
				}
			}

			fmt.Fprintf(out, "\n%d passed, %d failed\n", len(args)-failed, failed)
			if failed > 0 {
				return failure(fmt.Sprintf("%d scenario(s) failed", failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print the call trace of each scenario")
	return cmd
}

func printResult(w io.Writer, res *scenario.Result, trace bool) {
	status := nameStyle.Render("PASS")
	if !res.Pass {
		status = missingStyle.Render("FAIL")
	}
	fmt.Fprintf(w, "%s %s\n", status, res.Name)
	if trace || !res.Pass {
		for _, line := range res.Trace {
			fmt.Fprintf(w, "    %s\n", dimStyle.Render(line))
		}
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
