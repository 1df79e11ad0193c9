// SPDX-License-Identifier: EPL-2.0

package session

import "github.com/rs/zerolog"

type options struct {
	logger           zerolog.Logger
	explicitTeardown bool
}

// Option customizes a Session or a Slot.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger sessions report lifecycle events to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExplicitTeardown makes Slot.Init fail with ErrSessionLive instead of
// silently closing a live session. It has no effect on Open.
func WithExplicitTeardown() Option {
	return func(o *options) {
		o.explicitTeardown = true
	}
}
