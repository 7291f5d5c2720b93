// Package session implements the interactive editing sessions: the single
// file editor, the batch editor over a record set, and the save pass shared
// by both.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tagedit/internal/logging"
	"github.com/llehouerou/tagedit/internal/tags"
)

var (
	// ErrNotNumber reports numeric input that does not parse.
	ErrNotNumber = errors.New("not a number")
	// ErrOutOfRange reports numeric input outside the field's range.
	ErrOutOfRange = errors.New("number out of range")
	// ErrCountOverflow reports a record count too large for a track field.
	ErrCountOverflow = errors.New("too many files")
)

// Terminal is the rendering and line input service a session runs on.
type Terminal interface {
	// Render clears the screen and draws s.
	Render(s Screen)
	Println(line string)
	// Prompt reads one line. It returns "" once input is closed.
	Prompt(label string) string
	// PromptDefault reads one line with def pre-filled as editable text.
	// It returns def once input is closed.
	PromptDefault(label, def string) string
	// Closed reports whether the input stream has ended.
	Closed() bool
}

// StatusKind classifies a status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusSuccess
	StatusWarning
	StatusError
)

// Status is a one-shot message shown on the next render.
type Status struct {
	Kind StatusKind
	Text string
}

func infoStatus(text string) Status    { return Status{Kind: StatusInfo, Text: text} }
func successStatus(text string) Status { return Status{Kind: StatusSuccess, Text: text} }
func warningStatus(text string) Status { return Status{Kind: StatusWarning, Text: text} }
func errorStatus(text string) Status   { return Status{Kind: StatusError, Text: "Error: " + text} }

// Item is one menu line: a key, a label and an optional value.
type Item struct {
	Key   string
	Label string
	Value string
}

// Section groups menu items under an optional heading.
type Section struct {
	Heading string
	Items   []Item
}

// Screen is everything a session shows for one menu iteration.
type Screen struct {
	Title    string
	Subtitle string
	Modified bool
	Sections []Section
	Status   Status
}

// Env holds the collaborators a session runs with.
type Env struct {
	Term  Terminal
	Store tags.Store
	Log   logrus.FieldLogger
}

func (e Env) logger() logrus.FieldLogger {
	return logging.Or(e.Log)
}

// readChoice prompts for a menu selection. ok is false when input has closed.
func readChoice(term Terminal) (choice string, ok bool) {
	choice = strings.ToUpper(strings.TrimSpace(term.Prompt("Select an option: ")))
	if choice == "" && term.Closed() {
		return "", false
	}
	return choice, true
}

// confirm asks a yes/no question. An empty answer picks defaultYes.
func confirm(term Terminal, question string, defaultYes bool) bool {
	switch strings.ToLower(strings.TrimSpace(term.Prompt(question + " "))) {
	case "":
		return defaultYes && !term.Closed()
	case "y", "yes":
		return true
	default:
		return false
	}
}

// confirmExit reports whether the session may end, asking first when
// there are unsaved changes.
func confirmExit(term Terminal, dirty bool) bool {
	if !dirty {
		return true
	}
	term.Println("You have unsaved changes!")
	return confirm(term, "Are you sure? y/N", false)
}

// parseNumber parses input for a numeric field. Years are signed 32-bit,
// track fields unsigned 16-bit.
func parseNumber(f tags.Field, input string) (int, error) {
	input = strings.TrimSpace(input)
	var (
		n   int64
		err error
	)
	if f == tags.FieldYear {
		n, err = strconv.ParseInt(input, 10, 32)
	} else {
		var u uint64
		u, err = strconv.ParseUint(input, 10, 16)
		n = int64(u)
	}
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%s %q: %w", f.Label(), input, ErrOutOfRange)
		}
		return 0, fmt.Errorf("%s %q: %w", f.Label(), input, ErrNotNumber)
	}
	return int(n), nil
}

// statusFor maps an edit error to its status line.
func statusFor(err error) Status {
	switch {
	case errors.Is(err, ErrOutOfRange):
		return errorStatus("Number out of range")
	case errors.Is(err, ErrNotNumber):
		return errorStatus("Not a number")
	case errors.Is(err, ErrCountOverflow):
		return errorStatus("Too many files")
	}
	return errorStatus(err.Error())
}

// trackCount checks that n records can be numbered.
func trackCount(n int) (int, error) {
	if n > tags.MaxTrackCount {
		return 0, fmt.Errorf("%d files: %w", n, ErrCountOverflow)
	}
	return n, nil
}

// formatAudioInfo renders stream properties as "FLAC · 3:45 · 44.1 kHz · 16 bit".
func formatAudioInfo(info *tags.AudioInfo) string {
	if info == nil {
		return ""
	}
	parts := []string{info.Format}
	if info.Duration > 0 {
		parts = append(parts, formatDuration(info.Duration))
	}
	if info.SampleRate > 0 {
		khz := strconv.FormatFloat(float64(info.SampleRate)/1000, 'f', -1, 64)
		parts = append(parts, khz+" kHz")
	}
	if info.BitDepth > 0 {
		parts = append(parts, strconv.Itoa(info.BitDepth)+" bit")
	}
	return strings.Join(parts, " · ")
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
