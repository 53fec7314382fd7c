package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

const (
	statusLabelWidth = 22
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct{ tag, color string }{
	statusInfo:  {tag: "INFO", color: ansiBlue},
	statusOK:    {tag: "OK", color: ansiGreen},
	statusError: {tag: "ERROR", color: ansiRed},
}

// statusPrinter writes the status report, coloring it only on a terminal.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, color: isTerminal(out)}
}

func (p *statusPrinter) header(title string) {
	line := "== " + strings.TrimSpace(title) + " =="
	fmt.Fprintln(p.out, p.paint(ansiBlue, line))
	fmt.Fprintln(p.out, p.paint(ansiBlue, strings.Repeat("-", len(line))))
}

func (p *statusPrinter) line(label string, kind statusKind, detail string) {
	fmt.Fprintln(p.out, p.paint(statusStyles[kind].color, formatStatusLine(label, kind, detail)))
}

func (p *statusPrinter) paint(color, text string) string {
	if !p.color || color == "" {
		return text
	}
	return color + text + ansiReset
}

// formatStatusLine renders "  Label:   [TAG] detail" with the label padded.
func formatStatusLine(label string, kind statusKind, detail string) string {
	tag := "[" + statusStyles[kind].tag + "]"
	if detail != "" {
		tag += " " + detail
	}
	return fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", tag)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
