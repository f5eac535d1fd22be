package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/host"
)

func newExecCommand(opts *rootOptions) *cobra.Command {
	var (
		entry  string
		module string
	)

	cmd := &cobra.Command{
		Use:   "exec FILE.wasm",
		Short: "Run a wasm guest against the gl host module",
		Long: `Compile FILE.wasm, link its imports against the gl host module and call
the exported entry function with no arguments.

After the call the pending error, the live buffers and the result of
finalizing the context are printed. A guest trap, including a policy
panic raised inside a host call, fails the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wasm, err := os.ReadFile(args[0])
			if err != nil {
				return commandError("read guest", err)
			}

			c, err := opts.begin()
			if err != nil {
				return err
			}

			results, runErr := host.Run(context.Background(), c, wasm, entry, host.WithModuleName(module))
			snap := c.Inspect()
			fin := finalize(c)

			out := cmd.OutOrStdout()
			if runErr == nil {
				fmt.Fprintf(out, "%s returned %v\n", entry, results)
			}
			fmt.Fprintf(out, "pending error: %s\n", gl.Name(snap.PendingError))
			fmt.Fprintf(out, "live buffers: %v\n", snap.Live)
			if fin != nil {
				fmt.Fprintf(out, "finalize: %v\n", fin)
			}

			switch {
			case runErr != nil:
				return &exitError{code: exitFailure, msg: "guest failed", err: runErr}
			case fin != nil:
				return &exitError{code: exitFailure, msg: "finalize failed", err: fin}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&entry, "entry", "e", "run", "exported function to call")
	cmd.Flags().StringVar(&module, "module", host.DefaultModule, "import module name the guest links against")
	return cmd
}
