package tags

import (
	"strings"

	"go.senan.xyz/taglib"
)

// readOgg reads the editable fields from an Ogg Vorbis or Opus file.
func readOgg(path string) (*Fields, error) {
	return readWithTaglib(path)
}

// readM4A reads the editable fields from an MP4/M4A file. TagLib maps the
// iTunes atoms onto the same property names it uses for Vorbis comments.
func readM4A(path string) (*Fields, error) {
	return readWithTaglib(path)
}

func readWithTaglib(path string) (*Fields, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	return upperKeys(rawTags).fields(), nil
}

// upperKeys normalizes TagLib property names to upper case.
func upperKeys(raw map[string][]string) vorbisComments {
	c := make(vorbisComments, len(raw))
	for key, values := range raw {
		key = strings.ToUpper(key)
		c[key] = append(c[key], values...)
	}
	return c
}
