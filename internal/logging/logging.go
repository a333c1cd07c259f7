package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Init builds a logger at level, falling back to info. Output goes to stderr unless out is given, so directives
// on stdout stay machine readable.
func Init(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	return log
}
