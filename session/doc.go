// SPDX-License-Identifier: EPL-2.0

// Package session wraps a streaming MP3 engine in an encoding session.
//
// A session is configured once with a sample rate, a channel count and a
// target bitrate, then fed blocks of interleaved 16-bit PCM. The engine
// buffers input internally, so an Encode call may return zero bytes; Flush
// drains whatever is left at the end of the stream.
//
// # Sessions
//
// Open returns a Session owned by the caller:
//
//	sess, err := session.Open(lame.New, session.Config{
//	    SampleRate:  44100,
//	    Channels:    2,
//	    BitrateKbps: 128,
//	})
//	if err != nil {
//	    // errors.Is(err, session.ErrInitFailed)
//	}
//	defer sess.Close()
//
//	out := make([]byte, session.EncodeBufferSize(1152))
//	n, err := sess.Encode(pcm, 1152, out)
//	// write out[:n]
//
//	n, err = sess.Flush(out)
//	// write out[:n]
//
// The channel mode is derived from the channel count (mono for one
// channel, joint stereo otherwise), the quality setting is fixed to
// Quality and automatic ID3 tagging is always disabled.
//
// # Slot
//
// Slot keeps a single process-wide session the way the C entry points do:
// Init replaces whatever session is live, and Encode, Flush and Close act on
// the live one. Use WithExplicitTeardown to make Init refuse to replace a
// live session.
//
// # Errors
//
// Every failure wraps one of ErrInitFailed, ErrNotInitialized,
// ErrInvalidArgument, ErrEncodeFailed or ErrSessionLive; test them with
// errors.Is. A failed call leaves the session as it was.
package session
