// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audenc"
)

var errUsage = errors.New("usage: mp3enc [flags] <input> <output.mp3>")

// preset is the YAML form of the encoding settings. Flags given on the
// command line win over values from the file.
type preset struct {
	SampleRate   int    `yaml:"sample_rate"`
	Channels     int    `yaml:"channels"`
	BitrateKbps  int    `yaml:"bitrate_kbps"`
	BufferFrames int    `yaml:"buffer_frames"`
	Format       string `yaml:"format"`
	Verify       bool   `yaml:"verify"`
}

func loadPreset(path string) (preset, error) {
	var p preset

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading preset: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("parsing preset %s: %w", path, err)
	}

	return p, nil
}

// levelFlag lets pflag parse zerolog levels.
type levelFlag struct{ zerolog.Level }

func (l *levelFlag) Type() string { return "level" }

func (l *levelFlag) Set(s string) error {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return err
	}
	l.Level = lvl
	return nil
}

type config struct {
	preset
	input    string
	output   string
	logLevel zerolog.Level
}

func (c config) options() audenc.Options {
	return audenc.Options{
		SampleRate:   c.SampleRate,
		Channels:     c.Channels,
		BitrateKbps:  c.BitrateKbps,
		BufferFrames: c.BufferFrames,
	}
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	fs := pflag.NewFlagSet("mp3enc", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, errUsage)
		fs.PrintDefaults()
	}

	level := levelFlag{zerolog.InfoLevel}
	fs.Var(&level, "log-level", "log level (trace, debug, info, warn, error)")

	var flags preset
	fs.IntVarP(&flags.BitrateKbps, "bitrate", "b", audenc.DefaultBitrateKbps, "target bitrate in kbps")
	fs.IntVarP(&flags.SampleRate, "rate", "r", 0, "output sample rate in Hz (0 keeps the input rate)")
	fs.IntVarP(&flags.Channels, "channels", "c", 0, "output channels, 1 or 2 (0 keeps the input layout)")
	fs.IntVar(&flags.BufferFrames, "buffer-frames", audenc.DefaultBufferFrames, "frames handed to the encoder per call")
	fs.StringVarP(&flags.Format, "format", "f", "", "input format, guessed from the extension when empty")
	fs.BoolVar(&flags.Verify, "verify", false, "decode the output afterwards and report what was written")
	presetPath := fs.String("preset", "", "YAML file with default settings")

	// pflag has already printed the problem and usage
	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return config{}, errUsage
	}

	cfg := config{
		preset:   flags,
		input:    fs.Arg(0),
		output:   fs.Arg(1),
		logLevel: level.Level,
	}

	if *presetPath == "" {
		return cfg, nil
	}

	p, err := loadPreset(*presetPath)
	if err != nil {
		return config{}, err
	}
	if !fs.Changed("bitrate") && p.BitrateKbps != 0 {
		cfg.BitrateKbps = p.BitrateKbps
	}
	if !fs.Changed("rate") {
		cfg.SampleRate = p.SampleRate
	}
	if !fs.Changed("channels") {
		cfg.Channels = p.Channels
	}
	if !fs.Changed("buffer-frames") && p.BufferFrames != 0 {
		cfg.BufferFrames = p.BufferFrames
	}
	if !fs.Changed("format") {
		cfg.Format = p.Format
	}
	if !fs.Changed("verify") {
		cfg.Verify = p.Verify
	}

	return cfg, nil
}
