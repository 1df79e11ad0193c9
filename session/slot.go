// SPDX-License-Identifier: EPL-2.0

package session

import (
	"sync"

	"github.com/rs/zerolog"
)

// Slot holds at most one live Session, the way the C entry points keep a
// single process-wide encoder. Init replaces the live session; Encode and
// Flush go to whatever session is live.
type Slot struct {
	mu      sync.Mutex
	factory EngineFactory
	opts    []Option
	log     zerolog.Logger
	strict  bool
	cur     *Session
}

func NewSlot(factory EngineFactory, opts ...Option) *Slot {
	o := newOptions(opts)

	return &Slot{
		factory: factory,
		opts:    opts,
		log:     o.logger,
		strict:  o.explicitTeardown,
	}
}

// Init opens a new session with cfg. A live session is closed first; an
// error while closing it is logged and does not stop the new session from
// being opened. With WithExplicitTeardown, Init on a live slot returns
// ErrSessionLive instead.
//
// When opening fails the slot is left empty. Opening fails on allocation
// or finalization errors and also when the engine rejects any single
// setting, such as an unsupported channel count.
func (s *Slot) Init(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur != nil {
		if s.strict {
			return ErrSessionLive
		}

		prev := s.cur
		s.cur = nil
		if err := prev.Close(); err != nil {
			s.log.Warn().
				Err(err).
				Str("session_id", prev.ID().String()).
				Msg("tearing down previous session")
		}
	}

	sess, err := Open(s.factory, cfg, s.opts...)
	if err != nil {
		return err
	}

	s.cur = sess

	return nil
}

func (s *Slot) Encode(pcm []int16, frames int, out []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return 0, ErrNotInitialized
	}

	return s.cur.Encode(pcm, frames, out)
}

func (s *Slot) Flush(out []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return 0, ErrNotInitialized
	}

	return s.cur.Flush(out)
}

// Close releases the live session, if any. The slot is empty afterwards
// even when releasing the engine reports an error.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return nil
	}

	cur := s.cur
	s.cur = nil

	return cur.Close()
}

func (s *Slot) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cur != nil
}

// Stats of the live session; ok is false when the slot is empty.
func (s *Slot) Stats() (st Stats, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return Stats{}, false
	}

	return s.cur.Stats(), true
}
