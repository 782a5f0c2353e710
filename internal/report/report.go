package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// previewLen is the number of leading token characters shown in any
// output. Full tokens never reach a terminal or an error message.
const previewLen = 8

// Preview returns a short, safe-to-print form of a token.
func Preview(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= previewLen {
		return token[:len(token)/2] + "..."
	}
	return token[:previewLen] + "..."
}

// Change describes a token rotation against one settings file.
type Change struct {
	File      string
	ServerKey string
	OldToken  string
	NewToken  string
}

// Reporter writes human-readable summaries. Status goes to Out, which
// keeps stdout clean for machine-readable output like 'configure -print'.
type Reporter struct {
	Out io.Writer
}

func New() *Reporter {
	return &Reporter{Out: os.Stderr}
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// DryRun reports a would-be change without implying anything was written.
func (r *Reporter) DryRun(c Change) {
	warnColor.Fprintln(r.Out, "DRY RUN: no changes written")
	fmt.Fprintf(r.Out, "  Settings file: %s\n", c.File)
	fmt.Fprintf(r.Out, "  Server entry:  %s\n", c.ServerKey)
	fmt.Fprintf(r.Out, "  Token change:  %s -> %s\n", Preview(c.OldToken), Preview(c.NewToken))
}

// Applied reports a completed rotation, including where the backup went.
func (r *Reporter) Applied(c Change, backupPath string) {
	successColor.Fprintln(r.Out, "Bearer token updated")
	fmt.Fprintf(r.Out, "  Settings file: %s\n", c.File)
	fmt.Fprintf(r.Out, "  Server entry:  %s\n", c.ServerKey)
	fmt.Fprintf(r.Out, "  Token change:  %s -> %s\n", Preview(c.OldToken), Preview(c.NewToken))
	fmt.Fprintf(r.Out, "  Backup:        %s\n", backupPath)
}

// Header prints a section heading for multi-step commands.
func (r *Reporter) Header(format string, args ...interface{}) {
	headerColor.Fprintf(r.Out, format+"\n", args...)
}

// Infof prints an indented status line.
func (r *Reporter) Infof(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, "  "+format+"\n", args...)
}

// Successf prints a completed-step line.
func (r *Reporter) Successf(format string, args ...interface{}) {
	successColor.Fprintf(r.Out, format+"\n", args...)
}

// Warnf prints a non-fatal warning.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	warnColor.Fprintf(r.Out, format+"\n", args...)
}
