package tags

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Sorrow446/go-mp4tag"
)

// writeM4ATags writes MP4/M4A tags using go-mp4tag. Fields that are absent
// are deleted from the file; other atoms are kept.
func writeM4ATags(path string, t *Fields) error {
	track, err := mp4Int16(FieldTrackNumber, t.TrackNumber)
	if err != nil {
		return err
	}
	total, err := mp4Int16(FieldTotalTracks, t.TotalTracks)
	if err != nil {
		return err
	}

	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	var del []string
	text := func(value *string, atom string) string {
		if value == nil {
			del = append(del, atom)
			return ""
		}
		return *value
	}

	tags := &mp4tag.MP4Tags{
		Title:       text(t.Title, "title"),
		Artist:      text(t.Artist, "artist"),
		AlbumArtist: text(t.AlbumArtist, "albumartist"),
		Album:       text(t.Album, "album"),
		CustomGenre: text(t.Genre, "customgenre"),
		Comment:     text(t.Comment, "comment"),
		TrackNumber: track,
		TrackTotal:  total,
	}

	if t.Year != 0 {
		tags.Date = strconv.Itoa(t.Year)
	} else {
		del = append(del, "date")
	}
	if t.TrackNumber == 0 && t.TotalTracks == 0 {
		del = append(del, "tracknumber", "tracktotal")
	}

	if err := mp4.Write(tags, del); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

// ErrMP4Range reports a number too large for the signed 16-bit MP4 atom.
var ErrMP4Range = errors.New("out of range for MP4")

// mp4Int16 converts a track number for the MP4 trkn atom, which go-mp4tag
// stores as int16.
func mp4Int16(f Field, n int) (int16, error) {
	if n < 0 || n > math.MaxInt16 {
		return 0, fmt.Errorf("%s %d: %w", f.Label(), n, ErrMP4Range)
	}
	return int16(n), nil
}
