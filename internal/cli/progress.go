package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/umonteiro/toric/pkg/observability"
)

// Progress display styles.
var (
	progressLabelStyle = lipgloss.NewStyle().Foreground(colorLabel).Width(11)
	progressValueStyle = lipgloss.NewStyle().Foreground(colorValue)
)

// =============================================================================
// Messages
// =============================================================================

// Messages fed into the progress model, either by solver hooks or by
// the ticker that redraws the elapsed time.
type (
	runStartMsg struct {
		algorithm  string
		generators int
		variables  int
	}
	pairMsg struct {
		dequeued int
		queued   int
		basis    int
	}
	runDoneMsg struct{}
	tickMsg    time.Time
)

// progressHooks forwards solver events into a running bubbletea program.
type progressHooks struct {
	prog *tea.Program
}

func (h *progressHooks) OnRunStart(_ context.Context, algorithm string, generators, variables int) {
	h.prog.Send(runStartMsg{algorithm: algorithm, generators: generators, variables: variables})
}

func (h *progressHooks) OnPairProcessed(_ context.Context, dequeued, queued, basis int) {
	h.prog.Send(pairMsg{dequeued: dequeued, queued: queued, basis: basis})
}

func (h *progressHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Model
// =============================================================================

// solveProgress is the bubbletea model for a live completion run.
type solveProgress struct {
	name       string
	algorithm  string
	started    time.Time
	generators int
	variables  int
	dequeued   int
	queued     int
	basis      int
	frame      int
	done       bool
	aborted    bool
}

// newSolveProgress creates the model for one run.
func newSolveProgress(name, algorithm string) solveProgress {
	return solveProgress{name: name, algorithm: algorithm, started: time.Now()}
}

func (m solveProgress) Init() tea.Cmd {
	return progressTick()
}

func progressTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m solveProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case runStartMsg:
		m.algorithm = msg.algorithm
		m.generators = msg.generators
		m.variables = msg.variables
	case pairMsg:
		m.dequeued = msg.dequeued
		m.queued = msg.queued
		m.basis = msg.basis
	case runDoneMsg:
		m.done = true
		return m, tea.Quit
	case tickMsg:
		m.frame++
		return m, progressTick()
	}
	return m, nil
}

func (m solveProgress) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	frame := spinnerFrames[m.frame%len(spinnerFrames)]
	b.WriteString(styleSpinner.Render(frame) + " " + StyleTitle.Render("Completing "+m.name))
	b.WriteString("\n\n")

	if m.generators > 0 {
		writeProgressRow(&b, "generators", fmt.Sprintf("%d in %d variables", m.generators, m.variables))
	}
	writeProgressRow(&b, "algorithm", m.algorithm)
	writeProgressRow(&b, "pairs", fmt.Sprintf("%d dequeued · %d queued", m.dequeued, m.queued))
	writeProgressRow(&b, "basis", fmt.Sprintf("%d vectors", m.basis))
	writeProgressRow(&b, "elapsed", time.Since(m.started).Round(100*time.Millisecond).String())

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q to abort"))
	return b.String()
}

func writeProgressRow(b *strings.Builder, label, value string) {
	b.WriteString(progressLabelStyle.Render(label) + " " + progressValueStyle.Render(value))
	b.WriteString("\n")
}

// =============================================================================
// Runner Integration
// =============================================================================

// runWithProgress executes fn under the live display, streaming solver
// events into it. Quitting the display early cancels the run.
func (c *CLI) runWithProgress(ctx context.Context, name, algorithm string, fn func(context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newSolveProgress(name, algorithm), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	observability.SetSolverHooks(&progressHooks{prog: prog})
	defer observability.Reset()

	errc := make(chan error, 1)
	go func() {
		err := fn(runCtx)
		prog.Send(runDoneMsg{})
		errc <- err
	}()

	final, uiErr := prog.Run()
	if m, ok := final.(solveProgress); ok && m.aborted {
		cancel()
	}
	if err := <-errc; err != nil {
		return err
	}
	return uiErr
}
