package logging

import (
	"github.com/sirupsen/logrus"
)

// Setup builds the process-wide logger. Unknown levels fall back to info
// rather than failing startup.
func Setup(level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}
