// SPDX-License-Identifier: EPL-2.0

// Command mp3enc converts WAV, AIFF, FLAC, Ogg Vorbis or MP3 input to MP3
// with libmp3lame:
//
//	mp3enc --bitrate 192 --rate 44100 take.flac take.mp3
//	mp3enc --preset voice.yaml --verify memo.wav memo.mp3
//
// A preset is a YAML file with any of sample_rate, channels, bitrate_kbps,
// buffer_frames, format and verify. Flags given explicitly override it.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ik5/audenc"
	"github.com/ik5/audenc/audio"
	"github.com/ik5/audenc/engine/lame"
	"github.com/ik5/audenc/formats/aiff"
	"github.com/ik5/audenc/formats/flac"
	"github.com/ik5/audenc/formats/mp3"
	"github.com/ik5/audenc/formats/vorbis"
	"github.com/ik5/audenc/formats/wav"
	"github.com/ik5/audenc/session"
)

var (
	errUnknownFormat = errors.New("unknown input format")
	errEmptyOutput   = errors.New("encoded file decodes to no audio")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, lame.New))
}

func run(args []string, stderr io.Writer, engine session.EngineFactory) int {
	cfg, err := parseArgs(args, stderr)
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	case err != nil:
		fmt.Fprintln(stderr, "mp3enc:", err)
		return 1
	}

	log := newLogger(stderr, cfg.logLevel)
	if err := encodeFile(cfg, engine, log); err != nil {
		log.Error().Err(err).Str("input", cfg.input).Msg("encoding failed")
		return 1
	}

	return 0
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}).Level(level).With().Timestamp().Logger()
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, "wave")
	reg.Register("aiff", aiff.Decoder{}, "aif")
	reg.Register("flac", flac.Decoder{})
	reg.Register("vorbis", vorbis.Decoder{}, "ogg", "oga")
	reg.Register("mp3", mp3.Decoder{})
	return reg
}

func pickDecoder(reg *audio.Registry, cfg config) (audio.Decoder, string, error) {
	if cfg.Format != "" {
		dec, ok := reg.Get(cfg.Format)
		if !ok {
			return nil, "", fmt.Errorf("%w %q, known: %s", errUnknownFormat, cfg.Format, strings.Join(reg.Formats(), ", "))
		}
		return dec, strings.ToLower(cfg.Format), nil
	}

	dec, format, ok := reg.Lookup(cfg.input)
	if !ok {
		return nil, "", fmt.Errorf("%w for %s, use --format (known: %s)", errUnknownFormat, cfg.input, strings.Join(reg.Formats(), ", "))
	}
	return dec, format, nil
}

func encodeFile(cfg config, engine session.EngineFactory, log zerolog.Logger) error {
	dec, format, err := pickDecoder(newRegistry(), cfg)
	if err != nil {
		return err
	}

	in, err := os.Open(cfg.input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s as %s: %w", cfg.input, format, err)
	}

	log.Debug().
		Str("format", format).
		Int("sample_rate", src.SampleRate()).
		Int("channels", src.Channels()).
		Msg("input opened")

	out, err := os.Create(cfg.output)
	if err != nil {
		src.Close()
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	opts := cfg.options()
	opts.Engine = engine
	opts.Logger = &log

	start := time.Now()
	bw := bufio.NewWriter(out)
	stats, err := audenc.Transcode(src, bw, opts)
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	log.Info().
		Str("output", cfg.output).
		Uint64("frames", stats.Frames).
		Uint64("bytes", stats.Bytes).
		Dur("encode_time", stats.EncodeTime).
		Dur("elapsed", time.Since(start)).
		Msg("encoded")

	if cfg.Verify {
		return verify(cfg.output, log)
	}

	return nil
}

// verify decodes the written MP3 and reports what came back.
func verify(path string, log zerolog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening output for verification: %w", err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}
	defer src.Close()

	var samples int
	buf := make([]float32, 8192)
	for {
		n, err := src.ReadSamples(buf)
		samples += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("verifying %s: %w", path, err)
		}
	}

	frames := samples / src.Channels()
	if frames == 0 {
		return fmt.Errorf("verifying %s: %w", path, errEmptyOutput)
	}

	log.Info().
		Int("sample_rate", src.SampleRate()).
		Int("frames", frames).
		Dur("duration", time.Duration(frames)*time.Second/time.Duration(src.SampleRate())).
		Msg("verified")

	return nil
}
