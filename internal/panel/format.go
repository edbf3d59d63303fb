package panel

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// Count formats v with thousands separators.
func Count(v int64) string { return printer.Sprintf("%d", v) }

// WithUnit formats v followed by a unit suffix, e.g. "13,300 명".
func WithUnit(v int64, unit string) string { return Count(v) + " " + unit }
