package create

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// console prints user-facing progress. Installer output goes straight to
// the terminal through the runner; this is everything around it.
type console struct {
	out io.Writer
	err io.Writer
}

func (c console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c console) println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

func (c console) warnf(format string, args ...any) {
	_, _ = fmt.Fprintln(c.err, color.YellowString(format, args...))
}

func (c console) errorf(format string, args ...any) {
	_, _ = fmt.Fprintln(c.err, color.RedString(format, args...))
}

func cyan(s string) string  { return color.CyanString(s) }
func green(s string) string { return color.GreenString(s) }
