package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Commands print through a printer bound to the cobra command's writers so the
// same icons are used everywhere and tests can capture output.
//
// Icon semantics:
//   ✓  valid / written
//   ✗  invalid / failed          (written to the error stream)
//   ⚠  warning
//   ○  skipped
//   ~  neutral info

type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

// section prints a top-level header, e.g. "=== Validate ===".
func (p printer) section(title string) {
	fmt.Fprintf(p.out, "\n=== %s ===\n", title)
}

func (p printer) line(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

func (p printer) ok(name, msg string)   { p.line(p.out, "✓", name, msg) }
func (p printer) fail(name, msg string) { p.line(p.err, "✗", name, msg) }
func (p printer) warn(name, msg string) { p.line(p.out, "⚠", name, msg) }
func (p printer) skip(name, msg string) { p.line(p.out, "○", name, msg) }
func (p printer) info(name, msg string) { p.line(p.out, "~", name, msg) }
