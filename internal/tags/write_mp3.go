package tags

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"
)

// writeMP3Tags updates the managed ID3v2 frames of an MP3 file.
// Frames the editor does not manage are kept.
func writeMP3Tags(path string, f *Fields) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		// ID3v2.2 or older tags - strip them and retry
		if stripErr := stripID3v2Tag(path); stripErr != nil {
			return fmt.Errorf("strip unsupported ID3v2.2 tag: %w", stripErr)
		}
		tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	}
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer tag.Close()

	// UTF-8 is only valid in ID3v2.4; ID3v2.3 needs UTF-16 for non-Latin text
	if tag.Version() == 4 {
		tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	} else {
		tag.SetDefaultEncoding(id3v2.EncodingUTF16)
	}

	setID3TextFrame(tag, tag.CommonID("Title"), f.Title)
	setID3TextFrame(tag, tag.CommonID("Artist"), f.Artist)
	setID3TextFrame(tag, "TPE2", f.AlbumArtist)
	setID3TextFrame(tag, tag.CommonID("Album/Movie/Show title"), f.Album)
	setID3TextFrame(tag, tag.CommonID("Content type"), f.Genre)

	// Year lives in TDRC for ID3v2.4 and TYER for ID3v2.3.
	// A full recording date is kept while its year still matches.
	previousDate := getID3TextFrame(tag, "TDRC")
	tag.DeleteFrames("TDRC")
	tag.DeleteFrames("TYER")
	if f.Year != 0 {
		switch {
		case tag.Version() != 4:
			tag.AddTextFrame("TYER", tag.DefaultEncoding(), strconv.Itoa(f.Year))
		case previousDate != "" && parseYear(previousDate) == f.Year:
			tag.AddTextFrame("TDRC", tag.DefaultEncoding(), previousDate)
		default:
			tag.AddTextFrame("TDRC", tag.DefaultEncoding(), strconv.Itoa(f.Year))
		}
	}

	tag.DeleteFrames("TRCK")
	if f.TrackNumber != 0 || f.TotalTracks != 0 {
		tag.AddTextFrame("TRCK", tag.DefaultEncoding(), formatNumberPair(f.TrackNumber, f.TotalTracks))
	}

	commentID := tag.CommonID("Comments")
	tag.DeleteFrames(commentID)
	if f.Comment != nil {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    tag.DefaultEncoding(),
			Language:    "eng",
			Description: "",
			Text:        *f.Comment,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}

	return nil
}

// setID3TextFrame replaces a text frame, removing it when value is absent.
func setID3TextFrame(tag *id3v2.Tag, frameID string, value *string) {
	tag.DeleteFrames(frameID)
	if value != nil {
		tag.AddTextFrame(frameID, tag.DefaultEncoding(), *value)
	}
}
