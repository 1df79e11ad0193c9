// SPDX-License-Identifier: EPL-2.0

package audenc

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/ik5/audenc/audio"
	"github.com/ik5/audenc/session"
)

const (
	DefaultBitrateKbps = 128
	// DefaultBufferFrames is four MPEG-1 Layer III frames.
	DefaultBufferFrames = 4 * 1152
	// MaxChannels is the widest layout the encoder accepts.
	MaxChannels = 2
)

// Options controls a Transcode run. Zero values mean "keep the source" for
// SampleRate and Channels and "use the default" for everything else.
type Options struct {
	Engine       session.EngineFactory
	SampleRate   int
	Channels     int
	BitrateKbps  int
	BufferFrames int
	Logger       *zerolog.Logger
}

func (o Options) WithDefaults() Options {
	if o.BitrateKbps == 0 {
		o.BitrateKbps = DefaultBitrateKbps
	}
	if o.BufferFrames == 0 {
		o.BufferFrames = DefaultBufferFrames
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

func (o Options) Validate() error {
	if o.Engine == nil {
		return ErrNoEngine
	}
	if o.SampleRate < 0 || o.Channels < 0 || o.BitrateKbps < 0 || o.BufferFrames < 0 {
		return fmt.Errorf("%w: rate=%d channels=%d bitrate=%d buffer=%d",
			ErrInvalidOptions, o.SampleRate, o.Channels, o.BitrateKbps, o.BufferFrames)
	}
	return nil
}

// target resolves the output layout for src.
func (o Options) target(src audio.Source) (rate, channels int) {
	rate = o.SampleRate
	if rate == 0 {
		rate = src.SampleRate()
	}

	channels = o.Channels
	if channels == 0 {
		channels = src.Channels()
	}

	return rate, min(channels, MaxChannels)
}

// Transcode encodes src into w and closes src when done, successfully or
// not. The returned Stats cover whatever was encoded before a failure.
func Transcode(src audio.Source, w io.Writer, opts Options) (stats session.Stats, err error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return stats, closeWith(err, src, "source")
	}

	rate, channels := opts.target(src)
	log := opts.Logger.With().
		Int("src_rate", src.SampleRate()).
		Int("src_channels", src.Channels()).
		Int("rate", rate).
		Int("channels", channels).
		Logger()

	stage, err := buildChain(src, rate, channels)
	if err != nil {
		return stats, closeWith(err, src, "source")
	}

	sess, err := session.Open(opts.Engine, session.Config{
		SampleRate:  rate,
		Channels:    channels,
		BitrateKbps: opts.BitrateKbps,
	}, session.WithLogger(log))
	if err != nil {
		return stats, closeWith(err, stage, "source")
	}

	defer func() {
		stats = sess.Stats()
		err = closeWith(err, sess, "session")
		err = closeWith(err, stage, "source")
	}()

	if err := pump(sess, audio.NewInt16Reader(stage), w, opts.BufferFrames, channels); err != nil {
		return stats, err
	}

	final := sess.Stats()
	log.Debug().
		Uint64("frames", final.Frames).
		Uint64("bytes", final.Bytes).
		Dur("encode_time", final.EncodeTime).
		Msg("transcode finished")

	return final, nil
}

// closeWith closes c and folds a close failure into err. A lone close
// failure is returned as is; otherwise both are kept in a multierror.
func closeWith(err error, c io.Closer, what string) error {
	cerr := c.Close()
	if cerr == nil {
		return err
	}

	cerr = fmt.Errorf("closing %s: %w", what, cerr)
	if err == nil {
		return cerr
	}

	return multierror.Append(err, cerr)
}

// buildChain converts src to channels and rate, skipping stages that
// would be a no-op.
func buildChain(src audio.Source, rate, channels int) (audio.Source, error) {
	stage := src

	if stage.Channels() != channels {
		mixer, err := audio.NewChannelMixer(stage, channels)
		if err != nil {
			return nil, fmt.Errorf("mixing channels: %w", err)
		}
		stage = mixer
	}

	if stage.SampleRate() != rate {
		resampler, err := audio.NewResampler(stage, rate)
		if err != nil {
			return nil, fmt.Errorf("resampling: %w", err)
		}
		stage = resampler
	}

	return stage, nil
}

// pump moves PCM from r through sess into w, then flushes.
func pump(sess *session.Session, r *audio.Int16Reader, w io.Writer, bufferFrames, channels int) error {
	pcm := make([]int16, bufferFrames*channels)
	out := make([]byte, session.EncodeBufferSize(bufferFrames))

	for {
		frames, rerr := r.ReadFrames(pcm)
		if frames > 0 {
			n, err := sess.Encode(pcm, frames, out)
			if err != nil {
				return fmt.Errorf("encoding: %w", err)
			}
			if err := write(w, out[:n]); err != nil {
				return err
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading source: %w", rerr)
		}
	}

	n, err := sess.Flush(out)
	if err != nil {
		return fmt.Errorf("flushing: %w", err)
	}

	return write(w, out[:n])
}

func write(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("writing encoded data: %w", err)
	}
	return nil
}
