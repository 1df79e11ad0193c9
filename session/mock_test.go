// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
	"sync"
)

const (
	mockFrameSamples = 1152
	mockFrameBytes   = 417 // 128 kbps @ 44.1 kHz
)

var errMockBufferTooSmall = errors.New("mock: buffer too small")

// mockFactory hands out mockEngines and keeps a log of allocations and
// releases so tests can check nothing leaks.
type mockFactory struct {
	mu       sync.Mutex
	engines  []*mockEngine
	events   []string
	allocErr error
	// prepare, when set, runs on every engine before it is returned.
	prepare func(e *mockEngine)
}

func (f *mockFactory) New() (Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allocErr != nil {
		return nil, f.allocErr
	}

	e := &mockEngine{factory: f, index: len(f.engines) + 1}
	f.engines = append(f.engines, e)
	f.events = append(f.events, fmt.Sprintf("alloc#%d", e.index))

	if f.prepare != nil {
		f.prepare(e)
	}

	return e, nil
}

func (f *mockFactory) released(e *mockEngine) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, fmt.Sprintf("close#%d", e.index))
}

// live counts engines that were allocated and not yet closed.
func (f *mockFactory) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, e := range f.engines {
		if e.closeCalls == 0 {
			n++
		}
	}

	return n
}

func (f *mockFactory) log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.events...)
}

// mockEngine records its configuration and simulates an encoder that holds
// back one frame of look-ahead before emitting anything.
type mockEngine struct {
	factory *mockFactory
	index   int

	sampleRate int
	channels   int
	bitrate    int
	mode       Mode
	modeSet    bool
	quality    int
	id3        bool
	id3Set     bool
	calls      []string

	initErr   error
	encodeErr error
	flushErr  error
	closeErr  error

	buffered    int
	emitted     int
	encodeCalls int
	flushCalls  int
	closeCalls  int
}

func (e *mockEngine) SetInSampleRate(hz int) error {
	e.calls = append(e.calls, "sample_rate")
	e.sampleRate = hz
	return nil
}

func (e *mockEngine) SetNumChannels(n int) error {
	e.calls = append(e.calls, "channels")
	e.channels = n
	return nil
}

func (e *mockEngine) SetBitrate(kbps int) error {
	e.calls = append(e.calls, "bitrate")
	e.bitrate = kbps
	return nil
}

func (e *mockEngine) SetMode(m Mode) error {
	e.calls = append(e.calls, "mode")
	e.mode = m
	e.modeSet = true
	return nil
}

func (e *mockEngine) SetQuality(q int) error {
	e.calls = append(e.calls, "quality")
	e.quality = q
	return nil
}

func (e *mockEngine) SetWriteID3TagAutomatic(enabled bool) error {
	e.calls = append(e.calls, "id3")
	e.id3 = enabled
	e.id3Set = true
	return nil
}

func (e *mockEngine) InitParams() error {
	e.calls = append(e.calls, "init_params")
	if e.initErr != nil {
		return e.initErr
	}
	if e.sampleRate <= 0 || e.channels < 1 || e.channels > 2 || e.bitrate <= 0 {
		return errors.New("mock: invalid parameters")
	}
	return nil
}

func (e *mockEngine) Encode(pcm []int16, frames int, out []byte) (int, error) {
	e.encodeCalls++
	if e.encodeErr != nil {
		return 0, e.encodeErr
	}

	e.buffered += frames
	ready := 0
	for e.buffered-mockFrameSamples >= mockFrameSamples {
		e.buffered -= mockFrameSamples
		ready++
	}

	return e.emit(ready, out)
}

func (e *mockEngine) Flush(out []byte) (int, error) {
	e.flushCalls++
	if e.flushErr != nil {
		return 0, e.flushErr
	}

	ready := (e.buffered + mockFrameSamples - 1) / mockFrameSamples
	e.buffered = 0

	return e.emit(ready, out)
}

func (e *mockEngine) emit(frames int, out []byte) (int, error) {
	n := frames * mockFrameBytes
	if n > len(out) {
		return 0, errMockBufferTooSmall
	}

	for i := range n {
		out[i] = 0xff
	}
	e.emitted += n

	return n, nil
}

func (e *mockEngine) Close() error {
	e.closeCalls++
	e.factory.released(e)
	return e.closeErr
}
