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
	"os"
	"strings"

	"github.com/bemasher/crclfsr/crc"
	log "github.com/sirupsen/logrus"
)

const EnvPrefix = "CRCLFSR_"

var message = flag.String("message", "0b10001000100010001000000110000001", "message to encode, binary literals keep leading zeros")
var width = flag.Int("width", 0, "message width in bits, 0 infers it from the message literal")

var poly = flag.String("poly", "demo", "generator polynomial literal or catalog name")

var received = flag.String("received", "", "received word to check for transmission errors")

var sinks = flag.String("out", "-,crc_report.txt", "comma-separated list of output sinks, - is stdout")
var format = flag.String("format", "plain", "output format: plain, csv or json")

var quiet = flag.Bool("quiet", false, "suppress division diagrams and the lfsr table")
var logLevel = flag.String("loglevel", "info", "log level: debug, info, warn or error")

var version = flag.Bool("version", false, "display build date and commit hash")

func RegisterFlags() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.CommandLine.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(os.Stderr, "  -%s=%s: %s\n", f.Name, f.Value, f.Usage)
		})

		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Catalog polynomials:", strings.Join(crc.Names(), ", "))
	}
}

// EnvOverride sets any flag with a matching CRCLFSR_<FLAG> environment
// variable. Flags given on the command line still take precedence since
// they are parsed afterwards.
func EnvOverride(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		envName := EnvPrefix + strings.ToUpper(f.Name)
		flagValue := os.Getenv(envName)
		if flagValue == "" {
			return
		}

		fields := log.Fields{"env": envName, "flag": f.Name, "value": flagValue}
		if err := fs.Set(f.Name, flagValue); err != nil {
			log.WithFields(fields).WithError(err).Warn("environment variable failed to override flag")
		} else {
			log.WithFields(fields).Info("environment variable overrides flag")
		}
	})
}
