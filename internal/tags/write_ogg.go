package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeOggTags writes the managed Vorbis comments of an Ogg file using TagLib.
// Absent fields are deleted; unmanaged keys are left untouched.
func writeOggTags(path string, t *Fields) error {
	existing, err := taglib.ReadTags(path)
	if err != nil {
		return fmt.Errorf("read tags: %w", err)
	}

	managed := encodeVorbisComments(t, upperKeys(existing))
	tags := make(map[string][]string, len(managedVorbisKeys))
	for _, key := range managedVorbisKeys {
		// A nil value removes the key
		tags[key] = managed[key]
	}

	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}

	return nil
}
