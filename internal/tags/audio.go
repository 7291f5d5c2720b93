package tags

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
	"go.senan.xyz/taglib"
)

// AudioInfo holds the stream properties shown next to a file's tags.
type AudioInfo struct {
	Duration   time.Duration
	Format     string // MP3, FLAC, OPUS, VORBIS, AAC, ALAC, M4A
	SampleRate int
	BitDepth   int // 0 when the codec has no fixed depth
}

var infoReaders = map[Format]func(path string) (*AudioInfo, error){
	FormatMP3:  withFile(mp3Info),
	FormatFLAC: flacInfo,
	FormatOgg:  oggInfo,
	FormatMP4:  withFile(mp4Info),
}

// ReadAudioInfo reads the stream properties of the file at path from its
// headers, without decoding audio where the container allows it.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	format, err := Sniff(path)
	if err != nil {
		return nil, err
	}
	read, ok := infoReaders[format]
	if !ok {
		return nil, ErrNotAudio
	}
	return read(path)
}

func withFile(read func(*os.File) (*AudioInfo, error)) func(string) (*AudioInfo, error) {
	return func(path string) (*AudioInfo, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return read(f)
	}
}

func mp3Info(r *os.File) (*AudioInfo, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	rate := d.SampleRate()
	if rate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}
	return &AudioInfo{
		Duration:   samplesToDuration(int64(max(d.SampleCount(), 0)), rate),
		Format:     "MP3",
		SampleRate: rate,
		BitDepth:   16,
	}, nil
}

// flacInfo reads the STREAMINFO block, falling back to a decoder when the
// metadata cannot be parsed (for instance behind a leading ID3v2 tag).
func flacInfo(path string) (*AudioInfo, error) {
	f, err := goflac.ParseFile(path)
	if err == nil {
		for _, meta := range f.Meta {
			if meta.Type != goflac.StreamInfo {
				continue
			}
			if info, ok := parseStreamInfo(meta.Data); ok {
				return info, nil
			}
		}
	}
	return withFile(decodeFLACInfo)(path)
}

// parseStreamInfo decodes the sample rate (20 bits), bits per sample
// (5 bits, minus one) and total samples (36 bits) packed from byte 10.
func parseStreamInfo(data []byte) (*AudioInfo, bool) {
	if len(data) < 18 {
		return nil, false
	}
	rate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
	depth := (int(data[12])&0x01)<<4 | int(data[13])>>4 + 1
	samples := int64(data[13]&0x0f)<<32 | int64(data[14])<<24 | int64(data[15])<<16 |
		int64(data[16])<<8 | int64(data[17])
	if rate == 0 {
		return nil, false
	}
	return &AudioInfo{
		Duration:   samplesToDuration(samples, rate),
		Format:     "FLAC",
		SampleRate: rate,
		BitDepth:   depth,
	}, true
}

func decodeFLACInfo(r *os.File) (*AudioInfo, error) {
	if err := skipID3v2(r); err != nil {
		return nil, err
	}
	streamer, format, err := flac.Decode(r)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return &AudioInfo{
		Duration:   format.SampleRate.D(streamer.Len()),
		Format:     "FLAC",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}, nil
}

func oggInfo(path string) (*AudioInfo, error) {
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return nil, err
	}
	// TagLib does not name the codec inside the Ogg container.
	format := "VORBIS"
	if strings.EqualFold(filepath.Ext(path), ".opus") {
		format = "OPUS"
	}
	return &AudioInfo{
		Duration:   props.Length,
		Format:     format,
		SampleRate: int(props.SampleRate),
	}, nil
}

func mp4Info(r *os.File) (*AudioInfo, error) {
	c, err := m4a.Open(r)
	if err != nil {
		return nil, err
	}
	info := &AudioInfo{
		Duration:   c.Duration(),
		Format:     "M4A",
		SampleRate: int(c.SampleRate()),
	}
	switch c.Codec() {
	case m4a.CodecAAC:
		info.Format = "AAC"
	case m4a.CodecALAC:
		info.Format = "ALAC"
		info.BitDepth = int(c.SampleSize())
	case m4a.CodecUnknown:
	}
	return info, nil
}

func samplesToDuration(samples int64, rate int) time.Duration {
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start when
// there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	if _, err := io.ReadFull(r, header); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	_, err := r.Seek(id3v2Length(header), io.SeekStart)
	return err
}
