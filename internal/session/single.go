package session

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/tags"
)

// singleMenu maps menu keys to the field they edit. Key 6 edits the track
// number and total tracks together.
var singleMenu = []struct {
	key   string
	field tags.Field
}{
	{"1", tags.FieldTitle},
	{"2", tags.FieldArtist},
	{"3", tags.FieldAlbumArtist},
	{"4", tags.FieldAlbum},
	{"5", tags.FieldYear},
	{"6", tags.FieldTrackNumber},
	{"7", tags.FieldGenre},
	{"8", tags.FieldComment},
}

// Single edits the fields of one record.
type Single struct {
	env    Env
	rec    *record.Record
	dirty  bool
	status Status
}

// NewSingle creates a session over rec. Edits mutate rec in place.
func NewSingle(env Env, rec *record.Record) *Single {
	return &Single{env: env, rec: rec}
}

// Dirty reports whether the record has unsaved changes.
func (s *Single) Dirty() bool {
	return s.dirty
}

// Run shows the menu until the user exits. It reports whether unsaved
// changes remain.
func (s *Single) Run() bool {
	for {
		s.env.Term.Render(s.screen())
		s.status = Status{}

		choice, ok := readChoice(s.env.Term)
		if !ok {
			s.env.logger().WithFields(logrus.Fields{"path": s.rec.Path, "unsaved": s.dirty}).Info("input closed, leaving file")
			return s.dirty
		}

		switch choice {
		case "9":
			var saved bool
			saved, s.status = save(s.env, []*record.Record{s.rec})
			if saved {
				s.dirty = false
			}
		case "0":
			if confirmExit(s.env.Term, s.dirty) {
				return s.dirty
			}
		default:
			if !s.edit(choice) {
				s.status = errorStatus("Invalid option")
			}
		}
	}
}

// edit runs the field edit bound to key. It reports whether key names one.
func (s *Single) edit(key string) bool {
	for _, m := range singleMenu {
		if m.key != key {
			continue
		}
		switch {
		case m.field == tags.FieldTrackNumber:
			s.editTrack()
		case m.field.Numeric():
			s.editNumber(m.field)
		default:
			s.editText(m.field)
		}
		return true
	}
	return false
}

func (s *Single) editText(f tags.Field) {
	current, _ := s.rec.Fields.Text(f)
	input := s.env.Term.PromptDefault(f.Label()+": ", current)
	if input == current {
		return
	}
	s.rec.Fields.SetText(f, input)
	s.dirty = true
}

func (s *Single) editNumber(f tags.Field) {
	current := s.rec.Fields.Number(f)
	n, err := parseNumber(f, s.env.Term.PromptDefault(f.Label()+": ", strconv.Itoa(current)))
	if err != nil {
		s.status = statusFor(err)
		return
	}
	if n == current {
		return
	}
	s.rec.Fields.SetNumber(f, n)
	s.dirty = true
}

// editTrack prompts for the track number and total tracks. Both are parsed
// before either is applied; each applies only if it changed.
func (s *Single) editTrack() {
	fields := s.rec.Fields
	track, err := parseNumber(tags.FieldTrackNumber,
		s.env.Term.PromptDefault(tags.FieldTrackNumber.Label()+": ", strconv.Itoa(fields.TrackNumber)))
	if err != nil {
		s.status = statusFor(err)
		return
	}
	total, err := parseNumber(tags.FieldTotalTracks,
		s.env.Term.PromptDefault(tags.FieldTotalTracks.Label()+": ", strconv.Itoa(fields.TotalTracks)))
	if err != nil {
		s.status = statusFor(err)
		return
	}

	if track != fields.TrackNumber {
		fields.TrackNumber = track
		s.dirty = true
	}
	if total != fields.TotalTracks {
		fields.TotalTracks = total
		s.dirty = true
	}
}

func (s *Single) screen() Screen {
	fields := s.rec.Fields
	items := make([]Item, 0, len(singleMenu))
	for _, m := range singleMenu {
		value := fields.Display(m.field)
		if m.field == tags.FieldTrackNumber {
			value = strconv.Itoa(fields.TrackNumber) + "/" + strconv.Itoa(fields.TotalTracks)
		}
		items = append(items, Item{Key: m.key, Label: m.field.Label(), Value: value})
	}

	return Screen{
		Title:    s.rec.Name(),
		Subtitle: formatAudioInfo(s.rec.Info),
		Modified: s.dirty,
		Sections: []Section{
			{Items: items},
			{Items: []Item{{Key: "9", Label: "Save"}, {Key: "0", Label: "Exit"}}},
		},
		Status: s.status,
	}
}
