package term

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/session"
	"github.com/llehouerou/tagedit/internal/tags"
	"github.com/llehouerou/tagedit/internal/ui/testutil"
	"github.com/llehouerou/tagedit/internal/ui/textinput"
)

func newPiped(input string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out, Options{ClearScreen: true}), out
}

func TestTerminal_Prompt(t *testing.T) {
	term, out := newPiped("9\nhello world\r\n")

	assert.Equal(t, "9", term.Prompt("Select an option: "))
	assert.Equal(t, "hello world", term.Prompt("Title: "))
	assert.False(t, term.Closed())
	assert.Equal(t, "Select an option: Title: ", out.String())
}

func TestTerminal_PromptDefault(t *testing.T) {
	term, out := newPiped("\nNew\n")

	assert.Equal(t, "Old", term.PromptDefault("Title: ", "Old"))
	assert.Equal(t, "New", term.PromptDefault("Title: ", "Old"))
	assert.Equal(t, "", term.PromptDefault("Artist: ", ""), "empty default stays empty")
	assert.Contains(t, out.String(), "Title: [Old] ")
}

func TestTerminal_EndOfInput(t *testing.T) {
	term, _ := newPiped("last line without newline")

	assert.Equal(t, "last line without newline", term.Prompt("> "))
	assert.True(t, term.Closed())
	assert.Equal(t, "", term.Prompt("> "))
	assert.Equal(t, "Keep", term.PromptDefault("> ", "Keep"), "closed input falls back to the default")
}

func TestTerminal_RenderWithoutTTY(t *testing.T) {
	term, out := newPiped("")

	term.Render(session.Screen{
		Title:    "01.mp3",
		Sections: []session.Section{{Items: []session.Item{{Key: "1", Label: "Title", Value: "Song"}}}},
	})
	term.Println("Total tracks: 3")

	plain := testutil.StripANSI(out.String())
	assert.NotContains(t, out.String(), clearSequence, "screen is only cleared on a TTY")
	assert.True(t, testutil.ContainsLine(plain, "1) Title:"))
	assert.True(t, testutil.ContainsLine(plain, "Total tracks: 3"))
}

func TestRenderScreen(t *testing.T) {
	s := session.Screen{
		Title:    "Batch edit: 3 files",
		Subtitle: "FLAC · 3:45",
		Modified: true,
		Sections: []session.Section{
			{Heading: "Shared fields", Items: []session.Item{
				{Key: "1", Label: "Artist", Value: "<differs>"},
				{Key: "3", Label: "Album Artist", Value: "AC/DC"},
			}},
			{Heading: "Actions", Items: []session.Item{{Key: "9", Label: "Save"}}},
		},
		Status: session.Status{Kind: session.StatusError, Text: "Error: Not a number"},
	}

	out := testutil.StripANSI(RenderScreen(s, 80))

	assert.True(t, testutil.ContainsLine(out, "Batch edit: 3 files [modified]"))
	assert.True(t, testutil.ContainsLine(out, "FLAC · 3:45"))
	assert.True(t, testutil.ContainsLine(out, "Shared fields"))
	assert.Equal(t, "1) Artist:       <differs>", testutil.FindLine(out, "1)"))
	assert.Equal(t, "3) Album Artist: AC/DC", testutil.FindLine(out, "3)"))
	assert.Equal(t, "9) Save", testutil.FindLine(out, "9)"))
	assert.True(t, testutil.ContainsLine(out, "Error: Not a number"))
}

func TestRenderScreen_TruncatesToWidth(t *testing.T) {
	s := session.Screen{
		Title: "x",
		Sections: []session.Section{{Items: []session.Item{
			{Key: "8", Label: "Comment", Value: strings.Repeat("long ", 40)},
		}}},
	}

	out := testutil.StripANSI(RenderScreen(s, 40))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, testutil.MeasureWidth(line), 40, "line %q", line)
	}
}

func TestRenderScreen_SanitizesValues(t *testing.T) {
	s := session.Screen{
		Title:    "bad\x1b[2Jname.mp3",
		Sections: []session.Section{{Items: []session.Item{{Key: "1", Label: "Title", Value: "a\nb"}}}},
	}

	out := RenderScreen(s, 0)
	assert.NotContains(t, out, "\x1b[2J")
	assert.True(t, testutil.ContainsLine(testutil.StripANSI(out), "1) Title:        ab"))
}

// scriptedEditor stands in for the editable prompt of a TTY. A nil entry
// cancels the prompt; past the script end it fails like a closed input.
type scriptedEditor struct {
	answers []*string
	labels  []string
}

func (e *scriptedEditor) run(label, initial string, _ int, _ io.Reader, _ io.Writer) (string, error) {
	e.labels = append(e.labels, label)
	if len(e.answers) == 0 {
		return "", io.EOF
	}
	a := e.answers[0]
	e.answers = e.answers[1:]
	if a == nil {
		return "", textinput.ErrCanceled
	}
	return *a, nil
}

func newTTY(answers ...*string) (*Terminal, *scriptedEditor) {
	term, _ := newPiped("")
	ed := &scriptedEditor{answers: answers}
	term.tty = true
	term.edit = ed.run
	return term, ed
}

func TestTerminal_CanceledPromptKeepsDefault(t *testing.T) {
	term, _ := newTTY(nil, nil, tags.Str("x"))

	assert.Equal(t, "Old", term.PromptDefault("Title: ", "Old"))
	assert.Equal(t, "", term.Prompt("Select an option: "))
	assert.False(t, term.Closed(), "canceling one prompt leaves input open")
	assert.Equal(t, "x", term.Prompt("Select an option: "))

	assert.Equal(t, "Old", term.PromptDefault("Title: ", "Old"))
	assert.True(t, term.Closed(), "a failed prompt closes input")
}

func TestTerminal_CanceledPromptStillConfirmsExit(t *testing.T) {
	term, ed := newTTY(tags.Str("1"), tags.Str("New"), tags.Str("2"), nil, tags.Str("0"), tags.Str("n"))
	rec := &record.Record{Path: "/music/01.mp3", Fields: &tags.Fields{}}

	unsaved := session.NewSingle(session.Env{Term: term, Store: tags.NewMock()}, rec).Run()

	assert.True(t, unsaved)
	assert.Equal(t, "New", *rec.Fields.Title)
	assert.Nil(t, rec.Fields.Artist, "canceled edit changes nothing")
	assert.Contains(t, ed.labels, "Are you sure? y/N ")
}
