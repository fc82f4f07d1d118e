// Package vlog centralizes the engine's logrus configuration: every
// component gets its own tagged *logrus.Entry instead of reaching for the
// package-level logger directly.
package vlog

import "github.com/sirupsen/logrus"

var base = logrus.New()

func init() {
	base.SetLevel(logrus.WarnLevel)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetVerbose lowers the base logger to Debug level, wired to the shell's
// --verbose flag.
func SetVerbose(verbose bool) {
	if verbose {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.WarnLevel)
	}
}

// For returns a component-tagged entry — e.g. vlog.For("pager") logs with
// component=pager on every line.
func For(component string) *logrus.Entry {
	return base.WithField("component", component)
}
