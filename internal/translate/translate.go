// Package translate prints the command-line summaries (byte and step
// counts) with the number formatting of the user's locale. The locale is
// read from the system once, on first use.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"
)

// fallback is used when the system reports no usable locale.
const fallback = "en-US"

var (
	once    sync.Once
	printer *message.Printer
)

func load() {
	tags, err := locale.GetLocales()
	if err != nil {
		logrus.WithError(err).Warnf("system locale unavailable, formatting summaries as %s", fallback)
	}
	if len(tags) == 0 {
		tags = []string{fallback}
	}
	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// Printer returns the printer matched to the user's locales.
func Printer() *message.Printer {
	once.Do(load)
	return printer
}

// Sprintf formats a summary line for the user's locale.
func Sprintf(format message.Reference, args ...any) string {
	return Printer().Sprintf(format, args...)
}
