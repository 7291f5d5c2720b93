// Package textinput provides a single-line editable prompt for the terminal.
package textinput

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tagedit/internal/ui/styles"
)

// charLimit bounds a single entry; tag values longer than this are rare.
const charLimit = 4096

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Primary)
}

// Model is a prompt with pre-filled, editable text.
type Model struct {
	input    textinput.Model
	initial  string
	done     bool
	canceled bool
}

// New creates a prompt showing label, with initial as editable text and the
// cursor at its end.
func New(label, initial string, width int) Model {
	ti := textinput.New()
	ti.Prompt = labelStyle().Render(label)
	ti.CharLimit = charLimit
	ti.Width = width
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return Model{input: ti, initial: initial}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyEsc:
			// Restore the pre-filled text
			m.input.SetValue(m.initial)
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.canceled {
		// Leave the submitted line in the scrollback without a cursor
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Done reports whether the text was submitted.
func (m Model) Done() bool {
	return m.done
}

// Canceled reports whether the user closed input instead of submitting.
func (m Model) Canceled() bool {
	return m.canceled
}

// ErrCanceled is returned by Run when input was closed with Ctrl+C or Ctrl+D.
var ErrCanceled = errors.New("input canceled")

// Run shows the prompt inline on out, reading keys from in, and returns the
// submitted text.
func Run(label, initial string, width int, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(New(label, initial, width), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(Model)
	if !ok || m.Canceled() {
		return "", ErrCanceled
	}
	return m.Value(), nil
}
