// SPDX-License-Identifier: EPL-2.0

package lame

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferTooSmall indicates the output buffer cannot hold the encoded data
	ErrBufferTooSmall = errors.New("lame: output buffer too small")
	// ErrMalloc indicates libmp3lame could not allocate memory
	ErrMalloc = errors.New("lame: memory allocation failed")
	// ErrParamsNotInitialized indicates encoding was attempted before lame_init_params
	ErrParamsNotInitialized = errors.New("lame: lame_init_params not called")
	// ErrPsychoAcoustic indicates the psychoacoustic model failed
	ErrPsychoAcoustic = errors.New("lame: psycho acoustic problems")
	// ErrUnknown is returned for any other negative status
	ErrUnknown = errors.New("lame: unknown error")
	// ErrUnavailable indicates the package was built without libmp3lame
	ErrUnavailable = errors.New("lame: built without libmp3lame (cgo disabled or nolame tag)")
	// ErrFrameCount indicates a frame count that is negative, wider than a
	// C int, or larger than the sample slice holds
	ErrFrameCount = errors.New("lame: frame count out of range")
	// ErrClosed indicates the engine handle was already released
	ErrClosed = errors.New("lame: engine closed")
)

// statusError converts a negative libmp3lame encode status into an error.
func statusError(status int) error {
	switch status {
	case -1:
		return ErrBufferTooSmall
	case -2:
		return ErrMalloc
	case -3:
		return ErrParamsNotInitialized
	case -4:
		return ErrPsychoAcoustic
	default:
		return fmt.Errorf("%w (%d)", ErrUnknown, status)
	}
}

// setterError reports a parameter libmp3lame refused.
func setterError(param string, value, status int) error {
	if status >= 0 {
		return nil
	}

	return fmt.Errorf("lame: invalid %s %d (status %d)", param, value, status)
}
