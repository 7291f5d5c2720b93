package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tagedit/internal/session"
	"github.com/llehouerou/tagedit/internal/ui/render"
	"github.com/llehouerou/tagedit/internal/ui/styles"
)

// minLabelWidth keeps values aligned across screens with short labels.
const minLabelWidth = 12

// RenderScreen formats s for a terminal width cells wide. A non-positive
// width disables truncation.
func RenderScreen(s session.Screen, width int) string {
	st := styles.T().S()
	var b strings.Builder

	title := st.Title.Render(render.Sanitize(s.Title))
	if s.Modified {
		title += " " + st.Modified.Render("[modified]")
	}
	b.WriteString(title + "\n")
	if s.Subtitle != "" {
		b.WriteString(st.Subtle.Render(s.Subtitle) + "\n")
	}

	labelWidth := minLabelWidth
	for _, sec := range s.Sections {
		for _, it := range sec.Items {
			if it.Value != "" {
				labelWidth = max(labelWidth, lipgloss.Width(it.Label))
			}
		}
	}

	sepWidth := 40
	if width > 0 {
		sepWidth = min(sepWidth, width)
	}
	for _, sec := range s.Sections {
		b.WriteString(st.Subtle.Render(render.Separator(sepWidth)) + "\n")
		if sec.Heading != "" {
			b.WriteString(st.Heading.Render(sec.Heading) + "\n")
		}
		for _, it := range sec.Items {
			b.WriteString(styleLine(render.MenuLine(it.Key, it.Label, it.Value, labelWidth, width), it.Key) + "\n")
		}
	}

	if s.Status.Text != "" {
		b.WriteString("\n" + statusStyle(s.Status.Kind).Render(render.Truncate(s.Status.Text, width)) + "\n")
	}
	return b.String()
}

// styleLine colors the "key)" prefix of a laid-out menu line.
func styleLine(line, key string) string {
	st := styles.T().S()
	prefix := key + ")"
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return st.Base.Render(line)
	}
	return st.Key.Render(prefix) + st.Base.Render(rest)
}

func statusStyle(kind session.StatusKind) lipgloss.Style {
	st := styles.T().S()
	switch kind {
	case session.StatusSuccess:
		return st.Success
	case session.StatusWarning:
		return st.Warning
	case session.StatusError:
		return st.Error
	case session.StatusInfo, session.StatusNone:
	}
	return st.Info
}

// clearSequence erases the screen and moves the cursor home.
var clearSequence = ansi.EraseEntireScreen + ansi.CursorHomePosition
