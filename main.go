// CRCLFSR - Computes and cross-checks CRC frame check sequences.
// Copyright (C) 2015 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bemasher/crclfsr/report"
	"github.com/bemasher/crclfsr/verify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ExitCode int

const (
	Success      ExitCode = 0
	Diverged     ExitCode = 1
	InvalidInput ExitCode = 2
)

// Run computes the report for cfg and writes it to out.
func Run(cfg Config, out io.Writer) (ExitCode, error) {
	logger := log.WithFields(log.Fields{
		"poly":    cfg.Poly.Terms(),
		"message": cfg.Message.String(),
	})

	var (
		r   verify.Report
		tr  verify.Traces
		err error
	)

	// The csv format is the register table, so it always needs traces.
	if cfg.Verbose || cfg.Format == report.CSV {
		r, tr, err = verify.RunTrace(cfg.Message, cfg.Poly)
	} else {
		r, err = verify.Run(cfg.Message, cfg.Poly)
	}
	if err != nil {
		return InvalidInput, err
	}
	logger.WithField("fcs", r.FCS.String()).Debug("computed fcs")

	if err := report.Emit(out, cfg.Format, r, tr, cfg.Verbose); err != nil {
		return InvalidInput, errors.Wrap(err, "emit")
	}

	if cfg.Received != nil {
		detected, syndrome, err := verify.Detect(*cfg.Received, cfg.Poly)
		if err != nil {
			return InvalidInput, errors.Wrap(err, "received")
		}

		if cfg.Format == report.Plain {
			w := report.NewWriter(out)
			w.Heading("Received word")
			if err := w.Detection(*cfg.Received, syndrome, detected); err != nil {
				return InvalidInput, errors.Wrap(err, "emit")
			}
		}
		logger.WithFields(log.Fields{
			"received": cfg.Received.String(),
			"syndrome": syndrome.String(),
			"detected": detected,
		}).Info("checked received word")
	}

	if !r.OK() {
		logger.WithFields(log.Fields{
			"division":  r.FCS.String(),
			"lfsr":      r.LFSR.String(),
			"roundtrip": r.Roundtrip,
		}).Error("methods diverge")
		return Diverged, nil
	}

	return Success, nil
}

func run() ExitCode {
	cfg, err := HandleFlags()
	if err != nil {
		log.WithError(err).Error("invalid arguments")
		return InvalidInput
	}
	log.SetLevel(cfg.LogLevel)

	out, err := report.Open(log.StandardLogger(), cfg.Sinks)
	if err != nil {
		log.WithError(err).Error("opening output")
		return InvalidInput
	}
	defer out.Close()

	code, err := Run(cfg, out)
	if err != nil {
		log.WithError(err).Error("computing crc")
	}
	return code
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

var (
	buildTag   = "dev"     // v#.#.#
	buildDate  = "unknown" // date -u '+%Y-%m-%d'
	commitHash = "unknown" // git rev-parse HEAD
)

func main() {
	RegisterFlags()
	EnvOverride(flag.CommandLine)
	flag.Parse()

	if *version {
		fmt.Println("Build Tag: ", buildTag)
		fmt.Println("Build Date:", buildDate)
		fmt.Println("Commit:    ", commitHash)
		os.Exit(0)
	}

	os.Exit(int(run()))
}
