package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Format identifies the container a file was sniffed as.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatFLAC
	FormatOgg
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	case FormatOgg:
		return "OGG"
	case FormatMP4:
		return "M4A"
	case FormatUnknown:
	}
	return "unknown"
}

// id3Magic opens an ID3v2 tag.
const id3Magic = "ID3"

// id3v2Length returns the size of the ID3v2 tag header starts, footer
// included, or 0 when header does not start one.
func id3v2Length(header []byte) int64 {
	if len(header) < 10 || string(header[:3]) != id3Magic {
		return 0
	}
	// Syncsafe size: 7 significant bits per byte.
	n := 10 + (int64(header[6]&0x7f)<<21 | int64(header[7]&0x7f)<<14 |
		int64(header[8]&0x7f)<<7 | int64(header[9]&0x7f))
	if header[5]&0x10 != 0 {
		n += 10
	}
	return n
}

// stripID3v2Tag rewrites the file at path without its leading ID3v2 tag.
// Files without one are left untouched.
func stripID3v2Tag(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	n := id3v2Length(data)
	if n == 0 {
		return nil
	}
	if n >= int64(len(data)) {
		return fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", n, len(data))
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if err := os.WriteFile(path, data[n:], info.Mode().Perm()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// FileStore is the Store backed by the files on disk. The format of each file
// is detected from its content, not from its extension.
type FileStore struct{}

// NewFileStore returns a Store reading and writing files on disk.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// Sniff detects the tag container of the file at path.
func Sniff(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	_, fileType, err := tag.Identify(f)
	if err == nil {
		switch fileType {
		case tag.MP3:
			// FLAC files are sometimes prefixed with an ID3v2 tag.
			if isFLACAfterID3(f) {
				return FormatFLAC, nil
			}
			return FormatMP3, nil
		case tag.FLAC:
			return FormatFLAC, nil
		case tag.OGG:
			return FormatOgg, nil
		case tag.M4A, tag.M4B, tag.M4P, tag.ALAC, tag.UnknownFileType:
			// Identify reports MP4 containers with unrecognized brands as unknown.
			if isMP4(f) {
				return FormatMP4, nil
			}
		case tag.DSF:
		}
		return FormatUnknown, ErrNotAudio
	}

	// Tagless MP3 files carry no magic; accept a leading MPEG frame sync.
	if isMPEGFrame(f) {
		return FormatMP3, nil
	}
	return FormatUnknown, ErrNotAudio
}

// isMP4 reports whether the stream starts with an ISO BMFF ftyp box.
func isMP4(r io.ReadSeeker) bool {
	header := make([]byte, 8)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}
	if _, err := io.ReadFull(r, header); err != nil {
		return false
	}
	return string(header[4:8]) == "ftyp"
}

// isFLACAfterID3 reports whether a FLAC stream marker follows a leading ID3v2 tag.
func isFLACAfterID3(r io.ReadSeeker) bool {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}
	if err := skipID3v2(r); err != nil {
		return false
	}
	marker := make([]byte, 4)
	if _, err := io.ReadFull(r, marker); err != nil {
		return false
	}
	return string(marker) == "fLaC"
}

// isMPEGFrame reports whether the stream starts with an MPEG audio frame header.
func isMPEGFrame(r io.ReadSeeker) bool {
	header := make([]byte, 2)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}
	if _, err := io.ReadFull(r, header); err != nil {
		return false
	}
	return header[0] == 0xff && header[1]&0xe0 == 0xe0
}

// Read decodes the editable fields of the file at path.
func (s *FileStore) Read(path string) (*Fields, error) {
	format, err := Sniff(path)
	if err != nil {
		if errors.Is(err, ErrNotAudio) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotAudio)
		}
		return nil, err
	}

	var fields *Fields
	switch format {
	case FormatMP3:
		fields, err = readMP3(path)
	case FormatFLAC:
		fields, err = readFLAC(path)
	case FormatOgg:
		fields, err = readOgg(path)
	case FormatMP4:
		fields, err = readM4A(path)
	case FormatUnknown:
		err = ErrNotAudio
	}
	if err != nil {
		// Fall back to the generic reader before giving up on the file.
		generic, genericErr := readGeneric(path)
		if genericErr != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), errors.Join(ErrNotAudio, err))
		}
		fields = generic
	}
	return fields, nil
}

// Write encodes f into the file at path, leaving tags it does not manage intact.
func (s *FileStore) Write(path string, f *Fields) error {
	if _, err := os.Stat(path); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("file not found: %w", err)}
	}

	format, err := Sniff(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	switch format {
	case FormatMP3:
		err = writeMP3Tags(path, f)
	case FormatFLAC:
		err = writeFLACTags(path, f)
	case FormatOgg:
		err = writeOggTags(path, f)
	case FormatMP4:
		err = writeM4ATags(path, f)
	case FormatUnknown:
		err = fmt.Errorf("unsupported file format: %s", strings.ToLower(filepath.Ext(path)))
	}
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// readGeneric reads the common fields with dhowden/tag. Empty values are
// reported as absent since the library does not distinguish them.
func readGeneric(path string) (*Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	track, total := m.Track()
	return &Fields{
		Title:       optional(m.Title()),
		Artist:      optional(m.Artist()),
		AlbumArtist: optional(m.AlbumArtist()),
		Album:       optional(m.Album()),
		Genre:       optional(m.Genre()),
		Comment:     optional(m.Comment()),
		Year:        m.Year(),
		TrackNumber: track,
		TotalTracks: total,
	}, nil
}
