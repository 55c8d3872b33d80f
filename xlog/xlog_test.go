// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package xlog

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestPrintNil(t *testing.T) {
	var l Logger
	Print(l, "foo")
	Printf(l, "%d", 1)
	Println(l, "bar")
	Print(Quiet, "baz")
}

func TestPrintf(t *testing.T) {
	buf := new(bytes.Buffer)
	l := log.New(buf, "", 0)
	Printf(l, "block %d", 3)
	if got := buf.String(); got != "block 3\n" {
		t.Fatalf("got %q; want %q", got, "block 3\n")
	}
}

func TestStdLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	SetPrefix("gzlib: ")
	defer SetPrefix("")

	SetFlags(0)
	Debugf("hidden %d", 1)
	Warn("shown")
	if s := buf.String(); strings.Contains(s, "hidden") ||
		!strings.Contains(s, "gzlib: shown") {
		t.Fatalf("unexpected output %q", s)
	}

	buf.Reset()
	SetFlags(Ldebug | Lnowarn)
	if Flags() != Ldebug|Lnowarn {
		t.Fatalf("Flags() = %#x; want %#x", Flags(), Ldebug|Lnowarn)
	}
	Debug("visible")
	Warnf("suppressed %s", "warning")
	if s := buf.String(); !strings.Contains(s, "visible") ||
		strings.Contains(s, "suppressed") {
		t.Fatalf("unexpected output %q", s)
	}
	SetFlags(0)
}
