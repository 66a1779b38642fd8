package logging

import (
	"github.com/sirupsen/logrus"
)

var rootLogger = logrus.New()

func init() {
	rootLogger.SetLevel(logrus.InfoLevel)
	rootLogger.SetFormatter(&Formatter{PrefixFields: []string{"component"}})
}

// Base returns the process-wide root logger.
func Base() *logrus.Logger {
	return rootLogger
}

// For returns a logger tagged with a component name. Packages keep one as
// a package-level `log` variable.
func For(component string) *logrus.Entry {
	return rootLogger.WithField("component", component)
}

// SetVerbose switches the root logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		rootLogger.SetLevel(logrus.DebugLevel)
	}
}
