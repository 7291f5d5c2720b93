package tags

import (
	"strconv"
	"strings"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// Vorbis comment keys managed by the editor. Everything else is preserved on write.
const (
	vorbisTitle       = "TITLE"
	vorbisArtist      = "ARTIST"
	vorbisAlbumArtist = "ALBUMARTIST"
	vorbisAlbum       = "ALBUM"
	vorbisDate        = "DATE"
	vorbisYear        = "YEAR"
	vorbisTrackNumber = "TRACKNUMBER"
	vorbisTotalTracks = "TOTALTRACKS"
	vorbisTrackTotal  = "TRACKTOTAL"
	vorbisGenre       = "GENRE"
	vorbisComment     = "COMMENT"
)

var managedVorbisKeys = []string{
	vorbisTitle, vorbisArtist, vorbisAlbumArtist, vorbisAlbum,
	vorbisDate, vorbisYear, vorbisTrackNumber, vorbisTotalTracks, vorbisTrackTotal,
	vorbisGenre, vorbisComment,
}

// vorbisComments maps upper-cased comment keys to their values.
type vorbisComments map[string][]string

// lookup returns the first value for any of the given keys.
func (c vorbisComments) lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		if values, ok := c[key]; ok && len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}

// text returns the first value for any of the given keys, or nil when missing.
func (c vorbisComments) text(keys ...string) *string {
	if v, ok := c.lookup(keys...); ok {
		return Str(v)
	}
	return nil
}

// fields converts comments to the editable field set.
func (c vorbisComments) fields() *Fields {
	trackStr, _ := c.lookup(vorbisTrackNumber)
	track, total := parseNumberPair(trackStr)
	if total == 0 {
		if s, ok := c.lookup(vorbisTotalTracks, vorbisTrackTotal); ok {
			total, _ = strconv.Atoi(strings.TrimSpace(s))
		}
	}
	date, _ := c.lookup(vorbisDate, vorbisYear)

	return &Fields{
		Title:       c.text(vorbisTitle),
		Artist:      c.text(vorbisArtist),
		AlbumArtist: c.text(vorbisAlbumArtist, "ALBUM ARTIST"),
		Album:       c.text(vorbisAlbum),
		Genre:       c.text(vorbisGenre),
		Comment:     c.text(vorbisComment, "DESCRIPTION"),
		Year:        parseYear(date),
		TrackNumber: track,
		TotalTracks: total,
	}
}

// encodeVorbisComments returns the managed comments for f, omitting absent
// fields. A full date in existing is kept when its year still matches.
func encodeVorbisComments(f *Fields, existing vorbisComments) vorbisComments {
	c := make(vorbisComments)
	addText := func(key string, value *string) {
		if value != nil {
			c[key] = []string{*value}
		}
	}
	addInt := func(key string, value int) {
		if value != 0 {
			c[key] = []string{strconv.Itoa(value)}
		}
	}

	addText(vorbisTitle, f.Title)
	addText(vorbisArtist, f.Artist)
	addText(vorbisAlbumArtist, f.AlbumArtist)
	addText(vorbisAlbum, f.Album)
	addText(vorbisGenre, f.Genre)
	addText(vorbisComment, f.Comment)
	if date, ok := existing.lookup(vorbisDate); ok && f.Year != 0 && parseYear(date) == f.Year {
		c[vorbisDate] = []string{date}
	} else {
		addInt(vorbisDate, f.Year)
	}
	addInt(vorbisTrackNumber, f.TrackNumber)
	addInt(vorbisTotalTracks, f.TotalTracks)
	return c
}

// readFLAC reads the editable fields from a FLAC file's Vorbis comment block.
func readFLAC(path string) (*Fields, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	cmts, _, err := findVorbisCommentBlock(f)
	if err != nil {
		return nil, err
	}
	if cmts == nil {
		return &Fields{}, nil
	}
	return splitVorbisComments(cmts.Comments).fields(), nil
}

// findVorbisCommentBlock returns the parsed comment block and its index in f.Meta,
// or nil and -1 when the file has none.
func findVorbisCommentBlock(f *goflac.File) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	for i, meta := range f.Meta {
		if meta.Type == goflac.VorbisComment {
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, -1, err
			}
			return cmts, i, nil
		}
	}
	return nil, -1, nil
}

// splitVorbisComments parses raw "KEY=value" comments into a map.
func splitVorbisComments(raw []string) vorbisComments {
	c := make(vorbisComments)
	for _, comment := range raw {
		// Split on first '='
		if idx := strings.Index(comment, "="); idx > 0 {
			key := strings.ToUpper(comment[:idx])
			c[key] = append(c[key], comment[idx+1:])
		}
	}
	return c
}

// isManagedVorbisKey reports whether key is rewritten by the editor.
func isManagedVorbisKey(key string) bool {
	key = strings.ToUpper(key)
	for _, k := range managedVorbisKeys {
		if k == key {
			return true
		}
	}
	return false
}
