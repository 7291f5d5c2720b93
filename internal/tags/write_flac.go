package tags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// writeFLACTags replaces the managed Vorbis comments of a FLAC file and keeps
// every other comment and metadata block.
func writeFLACTags(path string, t *Fields) error {
	f, err := goflac.ParseFile(path)
	if err != nil {
		// A leading ID3v2 tag hides the stream marker from the parser.
		if stripErr := stripID3v2Tag(path); stripErr != nil {
			return fmt.Errorf("strip ID3v2 header: %w", stripErr)
		}
		if f, err = goflac.ParseFile(path); err != nil {
			return fmt.Errorf("parse file: %w", err)
		}
	}

	existing, idx, err := findVorbisCommentBlock(f)
	if err != nil {
		return fmt.Errorf("parse comments: %w", err)
	}
	cmts, err := rebuildVorbisBlock(existing, t)
	if err != nil {
		return err
	}

	block := cmts.Marshal()
	if idx >= 0 {
		f.Meta[idx] = &block
	} else {
		// STREAMINFO must stay the first block.
		f.Meta = slices.Insert(f.Meta, min(1, len(f.Meta)), &block)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// rebuildVorbisBlock returns a comment block holding the unmanaged comments
// of existing followed by the managed comments for t.
func rebuildVorbisBlock(existing *flacvorbis.MetaDataBlockVorbisComment, t *Fields) (*flacvorbis.MetaDataBlockVorbisComment, error) {
	out := flacvorbis.New()
	var previous vorbisComments
	if existing != nil {
		out.Vendor = existing.Vendor
		previous = splitVorbisComments(existing.Comments)
		for _, c := range existing.Comments {
			if key, _, _ := strings.Cut(c, "="); !isManagedVorbisKey(key) {
				out.Comments = append(out.Comments, c)
			}
		}
	}

	managed := encodeVorbisComments(t, previous)
	for _, key := range managedVorbisKeys {
		for _, v := range managed[key] {
			if err := out.Add(key, v); err != nil {
				return nil, fmt.Errorf("add %s: %w", strings.ToLower(key), err)
			}
		}
	}
	return out, nil
}
