package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagedit/internal/tags"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		field   tags.Field
		input   string
		want    int
		wantErr error
	}{
		{tags.FieldYear, "1999", 1999, nil},
		{tags.FieldYear, " 2024\n", 2024, nil},
		{tags.FieldYear, "-44", -44, nil},
		{tags.FieldYear, "0", 0, nil},
		{tags.FieldYear, "abc", 0, ErrNotNumber},
		{tags.FieldYear, "", 0, ErrNotNumber},
		{tags.FieldYear, "19.5", 0, ErrNotNumber},
		{tags.FieldYear, "3000000000", 0, ErrOutOfRange},
		{tags.FieldTrackNumber, "12", 12, nil},
		{tags.FieldTrackNumber, "65535", 65535, nil},
		{tags.FieldTrackNumber, "65536", 0, ErrOutOfRange},
		{tags.FieldTotalTracks, "-1", 0, ErrNotNumber},
		{tags.FieldTotalTracks, "3/12", 0, ErrNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.field.Label()+"/"+tt.input, func(t *testing.T) {
			got, err := parseNumber(tt.field, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrackCount(t *testing.T) {
	n, err := trackCount(tags.MaxTrackCount)
	require.NoError(t, err)
	assert.Equal(t, tags.MaxTrackCount, n)

	_, err = trackCount(tags.MaxTrackCount + 1)
	assert.ErrorIs(t, err, ErrCountOverflow)
}

func TestFormatAudioInfo(t *testing.T) {
	assert.Empty(t, formatAudioInfo(nil))
	assert.Equal(t, "FLAC · 3:45 · 44.1 kHz · 16 bit", formatAudioInfo(&tags.AudioInfo{
		Format: "FLAC", Duration: 225 * time.Second, SampleRate: 44100, BitDepth: 16,
	}))
	assert.Equal(t, "MP3 · 1:02:03 · 48 kHz", formatAudioInfo(&tags.AudioInfo{
		Format: "MP3", Duration: time.Hour + 2*time.Minute + 3*time.Second, SampleRate: 48000,
	}))
}
