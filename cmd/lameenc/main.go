// SPDX-License-Identifier: EPL-2.0

//go:build cgo

// Command lameenc builds the MP3 encoder as a C shared library:
//
//	go build -buildmode=c-shared -o liblame_enc_ffi.so ./cmd/lameenc
//
// It exports the four entry points of lame_enc_ffi.h. All of them act on
// one process-wide encoder session. Set LAME_ENC_DEBUG to log session
// events to stderr.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/ik5/audenc/engine/lame"
	"github.com/ik5/audenc/ffi"
	"github.com/ik5/audenc/session"
)

var (
	shim = ffi.New(session.NewSlot(lame.New, session.WithLogger(newLogger())))

	// channels of the live session, needed to size the caller's PCM buffer
	mu       sync.Mutex
	channels int
)

func newLogger() zerolog.Logger {
	if os.Getenv("LAME_ENC_DEBUG") == "" {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("component", "lame_enc_ffi").
		Logger()
}

// lame_enc_init returns 0 on success and -1 on error.
//
//export lame_enc_init
func lame_enc_init(sampleRate, numChannels, bitrateKbps C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	rc := shim.Init(int(sampleRate), int(numChannels), int(bitrateKbps))
	if rc == 0 {
		channels = int(numChannels)
	} else {
		channels = 0
	}

	return C.int(rc)
}

// lame_enc_encode encodes numSamples interleaved frames and returns the
// number of bytes written to mp3Buf, or a negative value on error.
//
//export lame_enc_encode
func lame_enc_encode(pcm *C.int16_t, numSamples C.int, mp3Buf *C.uint8_t, mp3BufSize C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if numSamples < 0 || mp3BufSize < 0 {
		return ffi.Failure
	}

	var samples []int16
	if pcm != nil {
		samples = unsafe.Slice((*int16)(unsafe.Pointer(pcm)), int(numSamples)*max(channels, 1))
	}

	return C.int(shim.Encode(samples, int(numSamples), outBuffer(mp3Buf, mp3BufSize)))
}

// lame_enc_flush drains the encoder into mp3Buf, which should hold at
// least 7200 bytes.
//
//export lame_enc_flush
func lame_enc_flush(mp3Buf *C.uint8_t, mp3BufSize C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if mp3BufSize < 0 {
		return ffi.Failure
	}

	return C.int(shim.Flush(outBuffer(mp3Buf, mp3BufSize)))
}

//export lame_enc_close
func lame_enc_close() {
	mu.Lock()
	defer mu.Unlock()

	shim.Close()
	channels = 0
}

func outBuffer(p *C.uint8_t, size C.int) []byte {
	if p == nil {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(size))
}

func main() {}
