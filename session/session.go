// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Stats accumulates what a session has processed so far.
type Stats struct {
	// Frames is the number of sample frames (per channel) consumed.
	Frames uint64
	// Bytes is the amount of encoded data produced, flush included.
	Bytes uint64
	// Calls counts successful Encode calls.
	Calls uint64
	// EncodeTime is the time spent inside the engine.
	EncodeTime time.Duration
}

// Session is one configured engine instance, live from Open until Close.
// All methods are safe for concurrent use; calls are serialized.
type Session struct {
	mu    sync.Mutex
	id    uuid.UUID
	cfg   Config
	eng   Engine
	log   zerolog.Logger
	stats Stats
}

// Open allocates an engine from factory and configures it with cfg.
// On failure no engine is left allocated and the error wraps ErrInitFailed.
func Open(factory EngineFactory, cfg Config, opts ...Option) (*Session, error) {
	o := newOptions(opts)

	if factory == nil {
		return nil, fmt.Errorf("%w: no engine factory", ErrInitFailed)
	}

	eng, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: allocating engine: %w", ErrInitFailed, err)
	}
	if eng == nil {
		return nil, fmt.Errorf("%w: engine factory returned nil", ErrInitFailed)
	}

	id := uuid.New()
	log := o.logger.With().
		Str("session_id", id.String()).
		Int("sample_rate", cfg.SampleRate).
		Int("channels", cfg.Channels).
		Int("bitrate_kbps", cfg.BitrateKbps).
		Logger()

	if err := configure(eng, cfg); err != nil {
		if cerr := eng.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("releasing engine after failed configuration")
		}
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	log.Debug().Str("mode", cfg.Mode().String()).Msg("session opened")

	return &Session{
		id:  id,
		cfg: cfg,
		eng: eng,
		log: log,
	}, nil
}

// ID identifies the session in log lines.
func (s *Session) ID() uuid.UUID { return s.id }

// Config returns the configuration the session was opened with.
func (s *Session) Config() Config { return s.cfg }

// Live reports whether the session still holds its engine.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.eng != nil
}

// Stats returns the counters accumulated so far.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}

// Encode feeds frames sample frames of interleaved pcm to the engine and
// returns the number of bytes written to out. Zero is a normal result:
// the engine buffers input before emitting a frame.
func (s *Session) Encode(pcm []int16, frames int, out []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eng == nil {
		return 0, ErrNotInitialized
	}
	if pcm == nil || out == nil {
		return 0, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if frames < 0 {
		return 0, fmt.Errorf("%w: negative frame count %d", ErrInvalidArgument, frames)
	}

	channels := max(s.cfg.Channels, 1)
	if frames > len(pcm)/channels {
		return 0, fmt.Errorf("%w: %d samples for %d frames of %d channels",
			ErrInvalidArgument, len(pcm), frames, channels)
	}

	start := time.Now()
	n, err := s.eng.Encode(pcm, frames, out)
	s.stats.EncodeTime += time.Since(start)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	if n < 0 || n > len(out) {
		return 0, fmt.Errorf("%w: engine reported %d bytes for a %d byte buffer",
			ErrEncodeFailed, n, len(out))
	}

	s.stats.Frames += uint64(frames)
	s.stats.Bytes += uint64(n)
	s.stats.Calls++

	return n, nil
}

// Flush drains the engine into out. It is meant to be called once, right
// before Close. out should hold at least MaxFlushSize bytes.
func (s *Session) Flush(out []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eng == nil {
		return 0, ErrNotInitialized
	}
	if out == nil {
		return 0, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}

	start := time.Now()
	n, err := s.eng.Flush(out)
	s.stats.EncodeTime += time.Since(start)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	if n < 0 || n > len(out) {
		return 0, fmt.Errorf("%w: engine reported %d bytes for a %d byte buffer",
			ErrEncodeFailed, n, len(out))
	}

	s.stats.Bytes += uint64(n)
	s.log.Debug().Int("bytes", n).Msg("session flushed")

	return n, nil
}

// Close releases the engine. It is idempotent: the engine is released at
// most once and later calls return nil.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eng == nil {
		return nil
	}

	eng := s.eng
	s.eng = nil

	if err := eng.Close(); err != nil {
		s.log.Warn().Err(err).Msg("releasing engine")
		return fmt.Errorf("releasing engine: %w", err)
	}

	s.log.Debug().
		Uint64("frames", s.stats.Frames).
		Uint64("bytes", s.stats.Bytes).
		Dur("encode_time", s.stats.EncodeTime).
		Msg("session closed")

	return nil
}
