// Renders CRC transcripts to a list of sinks.
package report

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrNoSinks = errors.New("no usable output sinks")

// ParseSinks splits a comma-separated list of sink names. The names "-" and
// "stdout" refer to the console, anything else is a file path.
func ParseSinks(list string) (sinks []string) {
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			sinks = append(sinks, name)
		}
	}
	return sinks
}

func isConsole(name string) bool {
	return name == "-" || strings.ToLower(name) == "stdout"
}

// An Output duplicates everything written to it across each opened sink.
type Output struct {
	io.Writer

	Sinks []string

	files []*os.File
	log   logrus.FieldLogger
}

// Open opens every sink. File sinks that cannot be created are logged and
// skipped, it is only an error if no sink could be opened at all.
func Open(log logrus.FieldLogger, sinks []string) (*Output, error) {
	out := &Output{log: log}

	var (
		writers []io.Writer
		console bool
	)
	for _, name := range sinks {
		if isConsole(name) {
			if console {
				continue
			}
			console = true
			writers = append(writers, os.Stdout)
			out.Sinks = append(out.Sinks, name)
			continue
		}

		fp, err := os.Create(name)
		if err != nil {
			log.WithError(err).WithField("sink", name).Warn("could not persist transcript")
			continue
		}

		log.WithField("sink", name).Debug("opened sink")
		writers = append(writers, fp)
		out.files = append(out.files, fp)
		out.Sinks = append(out.Sinks, name)
	}

	if len(writers) == 0 {
		return nil, errors.Wrapf(ErrNoSinks, "sinks %q", sinks)
	}

	out.Writer = io.MultiWriter(writers...)
	return out, nil
}

// Close closes every file sink, returning the first error encountered.
func (out *Output) Close() (err error) {
	for _, fp := range out.files {
		if cErr := fp.Close(); cErr != nil {
			out.log.WithError(cErr).WithField("sink", fp.Name()).Warn("error closing sink")
			if err == nil {
				err = errors.Wrapf(cErr, "close %s", fp.Name())
			}
		}
	}
	out.files = nil
	return err
}
