// Package term is the interactive terminal the editing sessions run on.
// On a TTY prompts are editable bubbletea inputs; otherwise lines are read
// plainly so input can be piped.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tagedit/internal/logging"
	"github.com/llehouerou/tagedit/internal/session"
	"github.com/llehouerou/tagedit/internal/ui/textinput"
)

// Options configures a Terminal.
type Options struct {
	// ClearScreen clears the terminal before each render on a TTY.
	ClearScreen bool
	Log         logrus.FieldLogger
}

// Terminal implements session.Terminal on an input and output stream.
type Terminal struct {
	in     io.Reader
	lines  *bufio.Reader
	out    io.Writer
	tty    bool
	opts   Options
	closed bool
	// edit runs one editable prompt on a TTY.
	edit func(label, initial string, width int, in io.Reader, out io.Writer) (string, error)
}

var _ session.Terminal = (*Terminal)(nil)

// New creates a terminal reading from in and writing to out. Editable
// prompts are used only when both are TTYs.
func New(in io.Reader, out io.Writer, opts Options) *Terminal {
	opts.Log = logging.Or(opts.Log)
	return &Terminal{
		in:    in,
		lines: bufio.NewReader(in),
		out:   out,
		tty:   isTTY(in) && isTTY(out),
		opts:  opts,
		edit:  textinput.Run,
	}
}

func isTTY(v any) bool {
	f, ok := v.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}

// width returns the output width in cells, or 0 when unknown.
func (t *Terminal) width() int {
	f, ok := t.out.(*os.File)
	if !ok || !t.tty {
		return 0
	}
	w, _, err := xterm.GetSize(f.Fd())
	if err != nil {
		return 0
	}
	return w
}

// Render implements session.Terminal.
func (t *Terminal) Render(s session.Screen) {
	if t.tty && t.opts.ClearScreen {
		fmt.Fprint(t.out, clearSequence)
	} else {
		fmt.Fprintln(t.out)
	}
	fmt.Fprint(t.out, RenderScreen(s, t.width()))
}

// Println implements session.Terminal.
func (t *Terminal) Println(line string) {
	fmt.Fprintln(t.out, line)
}

// Prompt implements session.Terminal.
func (t *Terminal) Prompt(label string) string {
	s, ok := t.read(label, "")
	if !ok {
		return ""
	}
	return s
}

// PromptDefault implements session.Terminal.
func (t *Terminal) PromptDefault(label, def string) string {
	s, ok := t.read(label, def)
	if !ok {
		return def
	}
	return s
}

// Closed implements session.Terminal.
func (t *Terminal) Closed() bool {
	return t.closed
}

func (t *Terminal) read(label, def string) (string, bool) {
	if t.closed {
		return "", false
	}
	if t.tty {
		return t.readEditable(label, def)
	}
	return t.readLine(label, def)
}

// readEditable runs an editable prompt. Canceling it answers with the
// default and leaves input open; any other failure closes input.
func (t *Terminal) readEditable(label, def string) (string, bool) {
	s, err := t.edit(label, def, t.width(), t.in, t.out)
	switch {
	case errors.Is(err, textinput.ErrCanceled):
		return def, true
	case err != nil:
		t.opts.Log.WithError(err).WithField("prompt", label).Error("editable prompt failed")
		t.closed = true
		return "", false
	}
	return s, true
}

// readLine reads a plain line. A non-empty default is shown in brackets and
// an empty line keeps it.
func (t *Terminal) readLine(label, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(t.out, "%s[%s] ", label, def)
	} else {
		fmt.Fprint(t.out, label)
	}

	line, err := t.lines.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			t.opts.Log.WithError(err).Error("read input")
		}
		t.closed = true
		if line == "" {
			fmt.Fprintln(t.out)
			return "", false
		}
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && def != "" {
		return def, true
	}
	return line, true
}
