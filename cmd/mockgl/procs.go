package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/mockgl/proc"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func newProcsCommand(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "procs",
		Short: "List the entry-point catalogue",
		Long: `List every entry point the gl host module exports, with its aliases,
wasm signature and version requirement.

Only entry points available under the configured version are shown
unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := opts.version()
			if err != nil {
				return commandError("version", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", dimStyle.Render("entry points for "+v.String()))
			shown := 0
			for _, e := range proc.Entries() {
				ok := e.Available(v)
				if !ok && !all {
					continue
				}
				fmt.Fprintln(out, formatEntry(&e, ok))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "none available; use --all to list every entry point")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include entry points the version does not provide")
	return cmd
}

func formatEntry(e *proc.Entry, available bool) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(e.Name))
	b.WriteString(typeStyle.Render(signature(e.Params, e.Results)))

	b.WriteString("\n    requires ")
	b.WriteString(e.Requires().String())
	if !available {
		b.WriteString(" ")
		b.WriteString(missingStyle.Render("(unavailable)"))
	}
	if len(e.Aliases) > 0 {
		b.WriteString("\n    ")
		b.WriteString(dimStyle.Render("aliases " + strings.Join(e.Aliases, ", ")))
	}
	return b.String()
}

func signature(params, results []api.ValueType) string {
	names := func(ts []api.ValueType) string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = api.ValueTypeName(t)
		}
		return strings.Join(out, ", ")
	}
	s := "(" + names(params) + ")"
	if len(results) > 0 {
		s += " -> " + names(results)
	}
	return s
}
