// Package tags provides unified tag reading and writing for music files.
// It hides the MP3, FLAC, Ogg and M4A tag formats behind a single Store.
package tags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NoneLabel is how an absent text field is displayed.
const NoneLabel = "<none>"

// MaxTrackCount is the largest value a track number or track total can hold.
const MaxTrackCount = 1<<16 - 1

// ErrNotAudio reports that a file could not be decoded as a tagged audio file.
var ErrNotAudio = errors.New("not a recognized audio file")

// WriteError reports a failed tag write for a single file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write tags %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Store reads and writes the editable fields of a music file.
type Store interface {
	Read(path string) (*Fields, error)
	Write(path string, f *Fields) error
}

// Fields is the editable tag set of one file.
// Text fields are nil when absent, which is distinct from an empty string.
// Numeric fields use 0 for unset.
type Fields struct {
	Title       *string
	Artist      *string
	AlbumArtist *string
	Album       *string
	Genre       *string
	Comment     *string

	Year        int
	TrackNumber int
	TotalTracks int
}

// Field names one of the editable fields.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbumArtist
	FieldAlbum
	FieldYear
	FieldTrackNumber
	FieldTotalTracks
	FieldGenre
	FieldComment
)

var fieldLabels = [...]string{
	FieldTitle:       "Title",
	FieldArtist:      "Artist",
	FieldAlbumArtist: "Album Artist",
	FieldAlbum:       "Album",
	FieldYear:        "Year",
	FieldTrackNumber: "Track #",
	FieldTotalTracks: "Total Tracks",
	FieldGenre:       "Genre",
	FieldComment:     "Comment",
}

// Label returns the display name of the field.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldLabels[f]
}

// Numeric reports whether the field holds an integer.
func (f Field) Numeric() bool {
	return f == FieldYear || f == FieldTrackNumber || f == FieldTotalTracks
}

func (f Field) String() string {
	return f.Label()
}

func (fs *Fields) text(f Field) **string {
	switch f {
	case FieldTitle:
		return &fs.Title
	case FieldArtist:
		return &fs.Artist
	case FieldAlbumArtist:
		return &fs.AlbumArtist
	case FieldAlbum:
		return &fs.Album
	case FieldGenre:
		return &fs.Genre
	case FieldComment:
		return &fs.Comment
	}
	panic("tags: " + f.Label() + " is not a text field")
}

func (fs *Fields) number(f Field) *int {
	switch f {
	case FieldYear:
		return &fs.Year
	case FieldTrackNumber:
		return &fs.TrackNumber
	case FieldTotalTracks:
		return &fs.TotalTracks
	}
	panic("tags: " + f.Label() + " is not a numeric field")
}

// Text returns a text field's value and whether it is present.
func (fs *Fields) Text(f Field) (string, bool) {
	p := *fs.text(f)
	if p == nil {
		return "", false
	}
	return *p, true
}

// SetText stores v in a text field, marking it present.
func (fs *Fields) SetText(f Field, v string) {
	*fs.text(f) = &v
}

// ClearText marks a text field absent.
func (fs *Fields) ClearText(f Field) {
	*fs.text(f) = nil
}

// Number returns a numeric field's value, 0 when unset.
func (fs *Fields) Number(f Field) int {
	return *fs.number(f)
}

// SetNumber stores n in a numeric field.
func (fs *Fields) SetNumber(f Field, n int) {
	*fs.number(f) = n
}

// Display returns the field as shown in menus: absent text is NoneLabel,
// unset numbers are 0.
func (fs *Fields) Display(f Field) string {
	if f.Numeric() {
		return strconv.Itoa(fs.Number(f))
	}
	if v, ok := fs.Text(f); ok {
		return v
	}
	return NoneLabel
}

// Clone returns a deep copy of the field set.
func (fs *Fields) Clone() *Fields {
	c := *fs
	for _, f := range []Field{FieldTitle, FieldArtist, FieldAlbumArtist, FieldAlbum, FieldGenre, FieldComment} {
		if v, ok := fs.Text(f); ok {
			c.SetText(f, v)
		}
	}
	return &c
}

// Str returns a pointer to s, for building Fields literals.
func Str(s string) *string {
	return &s
}

// optional maps the empty string codecs return for missing values to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref returns the value of p, or the empty string when absent.
func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// parseYear extracts the year from a date like "2023", "2023-06-15" or "2023-06".
func parseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) > 4 {
		date = date[:4]
	}
	y, _ := strconv.Atoi(date)
	return y
}

// parseNumberPair parses a track number that may be "N" or "N/M".
func parseNumberPair(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}

// formatNumberPair renders a track number in "N" or "N/M" form.
func formatNumberPair(num, total int) string {
	if total > 0 {
		return strconv.Itoa(num) + "/" + strconv.Itoa(total)
	}
	return strconv.Itoa(num)
}
