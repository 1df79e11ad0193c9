// SPDX-License-Identifier: EPL-2.0

// Package lame binds libmp3lame as a session.Engine.
//
// The binding needs cgo and a system libmp3lame (headers under
// <lame/lame.h>). Building with the nolame tag, or with cgo disabled,
// replaces it with a stub whose New returns ErrUnavailable, so the rest
// of the module still compiles and can be used with other engines.
//
//	sess, err := session.Open(lame.New, session.Config{
//	    SampleRate:  44100,
//	    Channels:    2,
//	    BitrateKbps: 128,
//	})
//
// Negative statuses from the encode and flush calls map to ErrBufferTooSmall,
// ErrMalloc, ErrParamsNotInitialized and ErrPsychoAcoustic.
package lame
