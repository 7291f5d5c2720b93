package testutil

import (
	"github.com/llehouerou/tagedit/internal/session"
)

// Keep answers a PromptDefault with its pre-filled default unchanged.
const Keep = "\x00keep"

// Terminal is a scripted session.Terminal. Each prompt consumes the next
// input; once the script runs out the terminal reports itself closed.
type Terminal struct {
	inputs  []string
	closed  bool
	Screens []session.Screen
	Lines   []string
	Prompts []string
}

var _ session.Terminal = (*Terminal)(nil)

// NewTerminal creates a terminal that answers prompts with inputs in order.
func NewTerminal(inputs ...string) *Terminal {
	return &Terminal{inputs: inputs}
}

func (t *Terminal) Render(s session.Screen) {
	t.Screens = append(t.Screens, s)
}

func (t *Terminal) Println(line string) {
	t.Lines = append(t.Lines, line)
}

func (t *Terminal) Prompt(label string) string {
	in, ok := t.next(label)
	if !ok || in == Keep {
		return ""
	}
	return in
}

func (t *Terminal) PromptDefault(label, def string) string {
	in, ok := t.next(label)
	if !ok || in == Keep {
		return def
	}
	return in
}

func (t *Terminal) Closed() bool {
	return t.closed
}

func (t *Terminal) next(label string) (string, bool) {
	t.Prompts = append(t.Prompts, label)
	if len(t.inputs) == 0 {
		t.closed = true
		return "", false
	}
	in := t.inputs[0]
	t.inputs = t.inputs[1:]
	return in, true
}

// Remaining returns the inputs not yet consumed.
func (t *Terminal) Remaining() []string {
	return t.inputs
}

// LastScreen returns the most recent render.
func (t *Terminal) LastScreen() session.Screen {
	if len(t.Screens) == 0 {
		return session.Screen{}
	}
	return t.Screens[len(t.Screens)-1]
}

// Statuses returns the non-empty status lines rendered, in order.
func (t *Terminal) Statuses() []string {
	var out []string
	for _, s := range t.Screens {
		if s.Status.Text != "" {
			out = append(out, s.Status.Text)
		}
	}
	return out
}

// Value returns the value shown for key on the most recent render.
func (t *Terminal) Value(key string) string {
	for _, sec := range t.LastScreen().Sections {
		for _, it := range sec.Items {
			if it.Key == key {
				return it.Value
			}
		}
	}
	return ""
}
