package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

// decoders maps lowercase file extensions to beep decoders
var decoders = map[string]decodeFunc{
	".wav":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".mp3":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".ogg":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".oga":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
}

// SupportedFormats lists the file extensions Load accepts
func SupportedFormats() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// decodeFile opens and decodes path, picking the decoder by extension
// The returned streamer owns the file; closing it closes the file
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}

	stream, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if format.SampleRate <= 0 {
		stream.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s: invalid sample rate %d", ErrDecode, path, format.SampleRate)
	}
	return stream, format, nil
}

// bufferStream adapts an in-memory buffer to StreamSeekCloser
type bufferStream struct {
	beep.StreamSeeker
}

func (bufferStream) Close() error { return nil }
