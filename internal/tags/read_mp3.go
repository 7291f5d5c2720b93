package tags

import (
	"errors"

	"github.com/bogem/id3v2/v2"
)

// readMP3 reads the editable fields from an MP3 file's ID3v2 tag.
// ID3v2.2 tags are not supported by id3v2 and go through the generic reader.
func readMP3(path string) (*Fields, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		return readGeneric(path)
	}
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, total := parseNumberPair(getID3TextFrame(id3tag, "TRCK"))

	f := &Fields{
		Title:       lookupID3TextFrame(id3tag, id3tag.CommonID("Title")),
		Artist:      lookupID3TextFrame(id3tag, id3tag.CommonID("Artist")),
		AlbumArtist: lookupID3TextFrame(id3tag, "TPE2"),
		Album:       lookupID3TextFrame(id3tag, id3tag.CommonID("Album/Movie/Show title")),
		Genre:       lookupID3TextFrame(id3tag, id3tag.CommonID("Content type")),
		Comment:     lookupID3Comment(id3tag),
		Year:        readID3Year(id3tag),
		TrackNumber: track,
		TotalTracks: total,
	}
	return f, nil
}

// readID3Year reads the year from TDRC (ID3v2.4) or TYER (ID3v2.3).
func readID3Year(id3tag *id3v2.Tag) int {
	if date := getID3TextFrame(id3tag, "TDRC"); date != "" {
		return parseYear(date)
	}
	return parseYear(getID3TextFrame(id3tag, "TYER"))
}

// lookupID3TextFrame returns a text frame's value, or nil when the frame is missing.
func lookupID3TextFrame(id3tag *id3v2.Tag, frameID string) *string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return nil
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return Str(tf.Text)
	}
	return nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	return deref(lookupID3TextFrame(id3tag, frameID))
}

// lookupID3Comment returns the first comment frame's text, or nil without one.
func lookupID3Comment(id3tag *id3v2.Tag) *string {
	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Comments")) {
		if cf, ok := frame.(id3v2.CommentFrame); ok {
			return Str(cf.Text)
		}
	}
	return nil
}
