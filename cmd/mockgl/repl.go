package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/binding"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/scenario"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

const replHelp = `commands:
  gen N                          delete H... | delete count=N H...
  is_buffer H                    bind TARGET H
  data TARGET SIZE HEX|- USAGE   named_data H SIZE HEX|- USAGE
  get_integer PNAME              get_buffer_param TARGET PNAME
  get_error                      store H
  help                           quit`

const historySize = 14

func newReplCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Issue calls interactively",
		Long: `Open a context and issue calls one line at a time, in the same syntax
scenario traces use. Bindings, live buffers and the pending error are
shown after every call.

When standard input is not a terminal the lines are read from it and
executed in order, printing one trace line each.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.begin()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				err = runInteractive(c)
			} else {
				err = runBatch(c, in, cmd.OutOrStdout())
			}

			if fin := finalize(c); fin != nil {
				fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render("finalize: "+fin.Error()))
				if err == nil {
					err = &exitError{code: exitFailure, msg: "finalize failed", err: fin}
				}
			}
			return err
		},
	}
}

// execLine runs one repl line. quit is true for the quit and exit commands.
func execLine(r *scenario.Runner, line string) (out string, failed, quit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return "", false, false
	case "quit", "exit":
		return "", false, true
	case "help", "?":
		return replHelp, false, false
	}

	st, err := scenario.ParseLine(line)
	if err != nil {
		return err.Error(), true, false
	}
	o := r.Step(st)
	if o.Panic != nil {
		return o.Line + "\n" + o.Panic.Error(), true, false
	}
	return o.Line, false, false
}

func runBatch(c *mockgl.Context, in io.Reader, out io.Writer) error {
	r := scenario.NewRunner(c)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		text, _, quit := execLine(r, line)
		if quit {
			break
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
	}
	if err := sc.Err(); err != nil {
		return commandError("read input", err)
	}
	return nil
}

// Calls run inside Update, which bubbletea invokes on the goroutine that
// called Program.Run; that goroutine owns the context's thread.
func runInteractive(c *mockgl.Context) error {
	p := tea.NewProgram(newReplModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type historyLine struct {
	text   string
	failed bool
}

type replModel struct {
	c       *mockgl.Context
	runner  *scenario.Runner
	snap    mockgl.Snapshot
	input   textinput.Model
	history []historyLine
}

func newReplModel(c *mockgl.Context) *replModel {
	ti := textinput.New()
	ti.Placeholder = "gen 1"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &replModel{
		c:      c,
		runner: scenario.NewRunner(c),
		snap:   c.Inspect(),
		input:  ti,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "ctrl+d", "esc":
			return m, tea.Quit

		case "enter":
			line := m.input.Value()
			m.input.Reset()
			out, failed, quit := execLine(m.runner, line)
			if quit {
				return m, tea.Quit
			}
			if line != "" {
				m.push(historyLine{text: "> " + line})
			}
			for _, l := range strings.Split(out, "\n") {
				if l != "" {
					m.push(historyLine{text: l, failed: failed})
				}
			}
			m.snap = m.c.Inspect()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) push(l historyLine) {
	m.history = append(m.history, l)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mockgl"))
	b.WriteString(" ")
	b.WriteString(m.c.Version().String())
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(m.c.Policy().String()))
	b.WriteString("\n\n")

	b.WriteString(panelStyle.Render(stateView(m.snap)))
	b.WriteString("\n\n")

	for _, l := range m.history {
		if l.failed {
			b.WriteString(errorStyle.Render(l.text))
		} else {
			b.WriteString(resultStyle.Render(l.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter run • help commands • esc quit"))
	return b.String()
}

func stateView(s mockgl.Snapshot) string {
	var bound []string
	for _, t := range binding.All() {
		if h := s.Bindings[t]; h != 0 {
			bound = append(bound, fmt.Sprintf("%s=%d", t, h))
		}
	}
	bindings := "none"
	if len(bound) > 0 {
		bindings = strings.Join(bound, " ")
	}

	pending := gl.Name(s.PendingError)
	if s.PendingError != gl.NO_ERROR {
		pending = errorStyle.Render(pending)
	}

	return fmt.Sprintf("bindings  %s\nlive      %v\npending   %s", bindings, s.Live, pending)
}
