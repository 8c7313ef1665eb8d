// Package ui is the interactive form for editing the task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"jtask/internal/output"
	"jtask/internal/service"
)

const (
	cursorCharacter = ">"
	inputCharLimit  = 500
	inputWidth      = 60
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// model is the BubbleTea model.
type model struct {
	ctx     context.Context
	svc     service.Service
	watcher *watcher

	input   textinput.Model
	entries []service.Entry
	cursor  int
	focus   focus

	// loadErr is the last List failure; err is the last Add or toggle failure.
	loadErr error
	err     error

	quitting bool
}

func newModel(ctx context.Context, svc service.Service, w *watcher) model {
	input := textinput.New()
	input.Placeholder = "New task"
	input.Prompt = "+ "
	input.CharLimit = inputCharLimit
	input.Width = inputWidth
	input.Focus()

	m := model{
		ctx:     ctx,
		svc:     svc,
		watcher: w,
		input:   input,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.watchCmd())
	}
	return tea.Batch(cmds...)
}

// refresh reloads the collection. A failed load keeps the last good list.
func (m *model) refresh() {
	entries, err := m.svc.List(m.ctx)
	m.loadErr = err
	if err != nil {
		return
	}
	m.entries = entries
	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Another process may have changed the file since the last cycle.
	m.refresh()

	switch msg := msg.(type) {
	case fileChangedMsg:
		if m.watcher != nil {
			return m, m.watcher.watchCmd()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		}

		if m.focus == focusList {
			switch msg.String() {
			case " ", "enter", "x":
				m.toggleSelected()
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.entries)-1 {
					m.cursor++
				}
			}
			return m, nil
		}

		if msg.Type == tea.KeyEnter {
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// submit adds the input text as a new task. Blank input is ignored.
func (m *model) submit() {
	description := strings.TrimSpace(m.input.Value())
	if description == "" {
		return
	}
	entry, err := m.svc.Add(m.ctx, description)
	m.err = err
	if err != nil {
		return
	}
	m.input.Reset()
	m.refresh()
	m.cursor = entry.Index - 1
}

// toggleSelected flips the completion state of the task under the cursor.
func (m *model) toggleSelected() {
	if len(m.entries) == 0 {
		return
	}
	selected := m.entries[m.cursor]
	var err error
	if selected.Task.Completed {
		_, err = m.svc.Reopen(m.ctx, selected.Index)
	} else {
		_, err = m.svc.Complete(m.ctx, selected.Index)
	}
	m.err = err
	if err == nil {
		m.refresh()
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("jtask"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(emptyStyle.Render("no tasks found"))
		b.WriteString("\n")
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("%s %s", output.Checkbox(e.Task.Completed), output.NormalizeDescription(e.Task.Description))
		if e.Task.Completed {
			line = doneStyle.Render(line)
		}
		prefix := " "
		if i == m.cursor && m.focus == focusList {
			prefix = cursorCharacter
			line = selectedStyle.Render(line)
		}
		fmt.Fprintf(&b, "%s %s\n", prefix, line)
	}

	for _, err := range []error{m.loadErr, m.err} {
		if err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("error: " + err.Error()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter add • tab switch • space toggle • esc quit"))
	b.WriteString("\n")
	return b.String()
}

// Options configures Run.
type Options struct {
	// Path is the data file to watch for changes by other processes.
	// Empty disables watching.
	Path   string
	Input  io.Reader
	Output io.Writer
	Logger *log.Logger
}

// Run starts the form and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var w *watcher
	if opts.Path != "" {
		var err error
		w, err = newWatcher(opts.Path)
		if err != nil {
			// The directory may not exist until the first add.
			logger.Debug("file watcher disabled", "path", opts.Path, "err", err)
		} else {
			defer w.Close()
		}
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(newModel(ctx, svc, w), programOpts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
