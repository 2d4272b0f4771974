// Package ui provides the styled terminal output for servstack.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, shared across commands.
var (
	successColor = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	errorColor   = lipgloss.Color("#e53935")
)

var (
	successMark  = lipgloss.NewStyle().Foreground(successColor).SetString("✓")
	warningLabel = lipgloss.NewStyle().Foreground(warningColor).SetString("warning:")
	errorLabel   = lipgloss.NewStyle().Foreground(errorColor).SetString("error:")
)

// Printer writes progress and success messages to out and warnings to err,
// matching the stream contract of the CLI (diagnostics never go to stdout).
type Printer struct {
	out io.Writer
	err io.Writer
}

// NewPrinter creates a printer over the two output streams.
func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

// Successf reports a completed operation on the output stream.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// Plainf reports progress or a benign no-op on the output stream.
func (p *Printer) Plainf(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Warnf reports a non-fatal diagnostic on the error stream.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.err, "%s %s\n", warningLabel, fmt.Sprintf(format, args...))
}

// Errorf reports a fatal diagnostic on the error stream.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.err, "%s %s\n", errorLabel, fmt.Sprintf(format, args...))
}
