// Package diag carries the compiler's verbosity knobs as a single immutable
// record, passed explicitly from the CLI into every pipeline stage. This
// replaces the process-wide globals of the original implementation's
// option.h (see spec.md §9 "Global mutable state").
package diag

import (
	"fmt"
	"io"
)

// Config bundles every diagnostic trace toggle. The zero value disables all
// tracing.
type Config struct {
	Verbose bool

	PrintSymbolDef   bool
	PrintSymbolRef   bool
	PrintPropertyDep bool
	PrintScopeStack  bool
	PrintLLTry       bool
	PrintGenAsm      bool
	PrintAssemble    bool
	PrintBindingDep  bool

	DumpAST      bool
	DumpAsm      bool
	DumpBytecode bool

	Out io.Writer // defaults to io.Discard when nil; the CLI wires stderr
}

func (c Config) writer() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

// Tracef writes a diagnostic line to Out when enabled is true. Every
// subsystem calls this instead of touching a package-level flag directly.
func (c Config) Tracef(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}
	fmt.Fprintf(c.writer(), format+"\n", args...)
}
