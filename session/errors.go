// SPDX-License-Identifier: EPL-2.0

package session

import "errors"

var (
	// ErrInitFailed indicates the engine could not be allocated or configured
	ErrInitFailed = errors.New("encoder init failed")
	// ErrNotInitialized indicates there is no live session
	ErrNotInitialized = errors.New("encoder not initialized")
	// ErrInvalidArgument indicates a missing or inconsistent buffer
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEncodeFailed indicates the engine reported an encode error
	ErrEncodeFailed = errors.New("encode failed")
	// ErrSessionLive indicates Init was refused because a session is live
	ErrSessionLive = errors.New("session already live")
)

// Code maps err to the status convention of the C entry points:
// 0 for success and -1 for any failure.
func Code(err error) int {
	if err == nil {
		return 0
	}

	return -1
}
