package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter styles one kind of journal output. With color it paints the
// text; without color it wraps it in open and close markers, which may be
// empty.
type Formatter struct {
	color *color.Color
	open  string
	close string
}

func (f Formatter) render(text string) string {
	if !colorEnabled() {
		return f.open + text + f.close
	}
	return f.color.Sprint(text)
}

// Sprint styles the arguments, joined as fmt.Sprint joins them.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf styles the formatted string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends "\n" unless s already ends with one.
func EnsureNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s
	}
	return s + "\n"
}

// colorEnabled honours NO_COLOR (https://no-color.org/) before fatih/color's
// own terminal detection.
func colorEnabled() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return !color.NoColor
}

func plain(attrs ...color.Attribute) Formatter {
	return Formatter{color: color.New(attrs...)}
}

func wrapped(open, close string, attrs ...color.Attribute) Formatter {
	return Formatter{color: color.New(attrs...), open: open, close: close}
}

// Outcome markers. They print the ✓, ✗, ⚠ and → glyphs in front of final
// messages, so they need no decoration when color is off.
var (
	Success = plain(color.FgGreen)
	Error   = plain(color.FgRed)
	Warning = plain(color.FgYellow)
	Info    = plain(color.FgCyan)
)

// Things the user can type or open: commands go in `backticks` when color is
// off; export files, store directories and flags stand on their own.
var (
	Code = wrapped("`", "`", color.FgYellow)
	Path = plain(color.FgYellow)
	Flag = plain(color.FgYellow)
)

// Journal values. Highlight marks dream ids, hashtags and backend names, and
// Muted the secondary details such as dates and unset fields.
var (
	Highlight = wrapped("'", "'", color.FgCyan)
	Muted     = wrapped("(", ")", color.FgHiBlack)
)

// Dream categories, shown as [lucid], [nightmare] or [normal] without color.
var (
	Lucid     = wrapped("[", "]", color.FgMagenta, color.Bold)
	Nightmare = wrapped("[", "]", color.FgRed, color.Bold)
	Normal    = wrapped("[", "]", color.FgBlue)
)

// Category picks the formatter for a name from DreamType.String. Dreams
// without a category render Muted.
func Category(name string) Formatter {
	switch name {
	case "lucid":
		return Lucid
	case "nightmare":
		return Nightmare
	case "normal":
		return Normal
	}
	return Muted
}
