package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestFormatStatusLine(t *testing.T) {
	got := formatStatusLine("Leader", statusError, "lock check failed")
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Leader:", "[ERROR] lock check failed")
	if got != want {
		t.Fatalf("formatStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
	if got := formatStatusLine("Queue", statusInfo, ""); !strings.HasSuffix(got, "[INFO]") {
		t.Fatalf("empty detail should end at the tag, got %q", got)
	}
}

func TestStatusPrinterColorsOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	printer := &statusPrinter{out: &buf, color: true}
	printer.line("Leader", statusOK, "idle")
	got := strings.TrimSuffix(buf.String(), "\n")
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}

	buf.Reset()
	plain := newStatusPrinter(&buf)
	plain.header("nfcrename status")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("buffers must not be colored: %q", buf.String())
	}
	requireContains(t, buf.String(), "== nfcrename status ==\n-----")
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"#", "Mode", "Path"}, [][]string{{"1", "F"}}, 0)
	for _, want := range []string{"#", "MODE", "PATH", "1", "F"} {
		if !strings.Contains(strings.ToUpper(out), want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
