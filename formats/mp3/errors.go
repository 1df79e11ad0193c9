// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3 wraps any failure to find a decodable MPEG audio frame.
var ErrNotMP3 = errors.New("not an MP3 stream")
