// SPDX-License-Identifier: EPL-2.0

package session

// Engine is a single instance of the underlying encoder.
//
// The setters are called once, in order, before InitParams. Encode and
// Flush are only called after a successful InitParams, and Close releases
// the handle. Implementations do not need to be safe for concurrent use.
type Engine interface {
	SetInSampleRate(hz int) error
	SetNumChannels(n int) error
	SetBitrate(kbps int) error
	SetMode(m Mode) error
	SetQuality(q int) error
	SetWriteID3TagAutomatic(enabled bool) error

	// InitParams finalizes the configuration.
	InitParams() error

	// Encode consumes frames sample frames of interleaved pcm and writes
	// whatever encoded data is ready into out.
	Encode(pcm []int16, frames int, out []byte) (int, error)

	// Flush drains all buffered data into out.
	Flush(out []byte) (int, error)

	Close() error
}

// EngineFactory allocates a fresh, unconfigured engine.
type EngineFactory func() (Engine, error)

// configure applies cfg to eng and finalizes it.
func configure(eng Engine, cfg Config) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"sample rate", func() error { return eng.SetInSampleRate(cfg.SampleRate) }},
		{"channels", func() error { return eng.SetNumChannels(cfg.Channels) }},
		{"bitrate", func() error { return eng.SetBitrate(cfg.BitrateKbps) }},
		{"mode", func() error { return eng.SetMode(cfg.Mode()) }},
		{"quality", func() error { return eng.SetQuality(Quality) }},
		{"id3 tag", func() error { return eng.SetWriteID3TagAutomatic(false) }},
		{"init params", eng.InitParams},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			return &stepError{step: s.name, err: err}
		}
	}

	return nil
}

type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.step + ": " + e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }
