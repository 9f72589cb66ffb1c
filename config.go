package main

import (
	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/crc"
	"github.com/bemasher/crclfsr/report"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Message  bitfield.BitField
	Poly     crc.Polynomial
	Received *bitfield.BitField

	Sinks   []string
	Format  report.Format
	Verbose bool

	LogLevel log.Level
}

// Options holds the raw flag values a Config is built from.
type Options struct {
	Message  string
	Width    int
	Poly     string
	Received string
	Out      string
	Format   string
	Quiet    bool
	LogLevel string
}

func (opts Options) Config() (cfg Config, err error) {
	cfg.LogLevel, err = log.ParseLevel(opts.LogLevel)
	if err != nil {
		return cfg, errors.Wrap(err, "loglevel")
	}

	cfg.Message, err = bitfield.Parse(opts.Message)
	if err != nil {
		return cfg, errors.Wrap(err, "message")
	}

	// An explicit width may only widen the message, never truncate it.
	if opts.Width != 0 {
		cfg.Message, err = bitfield.New(cfg.Message.Value, opts.Width)
		if err != nil {
			return cfg, errors.Wrap(err, "width")
		}
	}

	cfg.Poly, err = crc.Lookup(opts.Poly)
	if err != nil {
		return cfg, errors.Wrap(err, "poly")
	}

	if opts.Received != "" {
		word, err := bitfield.Parse(opts.Received)
		if err != nil {
			return cfg, errors.Wrap(err, "received")
		}
		cfg.Received = &word
	}

	cfg.Sinks = report.ParseSinks(opts.Out)
	if len(cfg.Sinks) == 0 {
		return cfg, errors.Wrap(report.ErrNoSinks, "out")
	}

	cfg.Format, err = report.ParseFormat(opts.Format)
	if err != nil {
		return cfg, err
	}

	cfg.Verbose = !opts.Quiet

	return cfg, nil
}

// HandleFlags builds a Config from the parsed command line.
func HandleFlags() (Config, error) {
	return Options{
		Message:  *message,
		Width:    *width,
		Poly:     *poly,
		Received: *received,
		Out:      *sinks,
		Format:   *format,
		Quiet:    *quiet,
		LogLevel: *logLevel,
	}.Config()
}
