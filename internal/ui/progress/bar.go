// Package progress shows a determinate progress bar on stderr while a
// project scan runs.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/pdash/internal/ui/styles"
)

// update is a progress report as drawn by the program.
type update struct {
	done  int
	total int
}

// Bar wraps a Bubbletea progress bar for non-interactive use.
// Its Report method satisfies scanner.ProgressFunc.
type Bar struct {
	message string
	out     io.Writer

	mu        sync.Mutex
	program   *tea.Program
	notify    chan struct{}
	finished  chan struct{}
	isRunning bool
	last      update
}

type barModel struct {
	progress progress.Model
	message  string
	current  update
	// notify signals that latest has changed; closed by Stop.
	notify chan struct{}
	latest func() (done, total int)
}

func (m barModel) Init() tea.Cmd {
	return m.wait()
}

// wait blocks until a report arrives and returns the newest counts, so
// reports coalesce but the last one is always drawn.
func (m barModel) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.notify; !ok {
			return tea.Quit()
		}
		done, total := m.latest()
		return update{done: done, total: total}
	}
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case update:
		m.current = msg
		return m, m.wait()
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m barModel) View() tea.View {
	return tea.NewView(m.render())
}

// render formats "[██████░░░░]  45% Scanning projects (9/20)".
func (m barModel) render() string {
	percent := fraction(m.current)
	return fmt.Sprintf("%s %3d%% %s (%d/%d)",
		m.progress.ViewAs(percent), int(percent*100), m.message, m.current.done, m.current.total)
}

func fraction(u update) float64 {
	if u.total <= 0 {
		return 0
	}
	f := float64(u.done) / float64(u.total)
	return min(f, 1)
}

// New creates a bar labelled with message. Nothing is drawn until Start.
func New(message string) *Bar {
	return &Bar{
		message:  message,
		out:      os.Stderr,
		notify:   make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
}

// Start begins drawing the bar.
func (b *Bar) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isRunning {
		return
	}

	model := barModel{
		progress: progress.New(
			progress.WithWidth(30),
			progress.WithoutPercentage(),
			progress.WithColors(styles.Primary, styles.Accent),
		),
		message: b.message,
		current: b.last,
		notify:  b.notify,
		latest:  b.Current,
	}

	// stderr keeps stdout clean for --json and --format output
	b.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithInput(nil), tea.WithOutput(b.out))
	b.isRunning = true

	go func() {
		_, _ = b.program.Run()
		close(b.finished)
	}()
}

// Report records that done of total entries are finished.
func (b *Bar) Report(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u := update{done: done, total: total}
	if u.done < b.last.done {
		// reports from parallel workers can arrive out of order
		return
	}
	b.last = u

	if !b.isRunning {
		return
	}

	// A pending signal already makes the program read b.last.
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Current returns the latest reported counts.
func (b *Bar) Current() (done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last.done, b.last.total
}

// Stop draws the final report, stops the bar and clears its line.
func (b *Bar) Stop() {
	b.mu.Lock()
	if !b.isRunning {
		b.mu.Unlock()
		return
	}
	b.isRunning = false
	close(b.notify)
	b.mu.Unlock()

	// The program quits by itself once the pending report is drawn.
	select {
	case <-b.finished:
	case <-time.After(500 * time.Millisecond):
		b.program.Quit()
		select {
		case <-b.finished:
		case <-time.After(100 * time.Millisecond):
		}
	}

	fmt.Fprint(b.out, "\r\033[K")
}
