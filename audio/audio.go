// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	// n should cover whole frames. Resampler drops the tail of a split
	// frame; ChannelMixer and Int16Reader join it with the next read.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format names (e.g., "wav", "flac") and file extensions to decoders.
type Registry struct {
	mtx    sync.RWMutex
	codecs map[string]Decoder
	exts   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		exts:   make(map[string]string),
	}
}

// Register adds d under format. The format name itself is always accepted
// as a file extension; exts adds more (without the leading dot).
func (r *Registry) Register(format string, d Decoder, exts ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = strings.ToLower(format)
	r.codecs[format] = d
	r.exts[format] = format
	for _, ext := range exts {
		r.exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Lookup finds the decoder for path by its extension and returns it with
// the format name it was registered under.
func (r *Registry) Lookup(path string) (Decoder, string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return nil, "", false
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.exts[ext]
	if !ok {
		return nil, "", false
	}

	return r.codecs[format], format, true
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	return formats
}
