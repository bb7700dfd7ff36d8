package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Header  *color.Color
	Null    *color.Color
	Number  *color.Color
	Summary *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	scheme := &ColorScheme{
		Header:  color.New(color.FgCyan, color.Bold),
		Null:    color.New(color.FgHiBlack),
		Number:  color.New(color.FgYellow),
		Summary: color.New(color.FgHiBlack),
	}
	// fatih/color disables itself when stdout is not a terminal; the printer
	// makes that decision per writer instead.
	scheme.Header.EnableColor()
	scheme.Null.EnableColor()
	scheme.Number.EnableColor()
	scheme.Summary.EnableColor()
	return scheme
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.Header.DisableColor()
	scheme.Null.DisableColor()
	scheme.Number.DisableColor()
	scheme.Summary.DisableColor()

	return scheme
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShouldColor reports whether output to w should be colored: w must be a
// terminal, the user must not have disabled colors and NO_COLOR must be unset.
func ShouldColor(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(w)
}
