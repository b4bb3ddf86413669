package cli

import (
	"fmt"
	"io"
)

// IO bundles the command output streams. Warnings go straight to stderr
// and never change the exit code; an operation that merely warned still
// succeeded.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Errorf writes a fatal error message to stderr.
func (o *IO) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.errOut, "error: "+format+"\n", a...)
}

// Warnf writes a non-fatal warning to stderr.
func (o *IO) Warnf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.errOut, "warning: "+format+"\n", a...)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
