//go:build linux || darwin || freebsd || netbsd || openbsd

package consolehandler

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/creack/pty"

	"github.com/philipp01105/linelog/core"
)

func TestConsoleHandler_ColorAutoOnTerminal(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()

	if !isTerminal(slave) {
		t.Fatal("Expected pty slave to be detected as a terminal")
	}

	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&out, master)
		close(done)
	}()

	h := NewConsoleHandler(ConsoleConfig{Writer: slave})
	h.Handle(newRecord(core.ErrorLevel, "on a terminal"))
	h.Close()
	_ = slave.Close()
	<-done

	if !strings.Contains(out.String(), "\x1b[31mERROR") {
		t.Errorf("Expected ANSI colored level on a terminal, got %q", out.String())
	}
}

func TestConsoleHandler_ColorNeverOnTerminal(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()

	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&out, master)
		close(done)
	}()

	h := NewConsoleHandler(ConsoleConfig{Writer: slave, Color: ColorNever})
	h.Handle(newRecord(core.ErrorLevel, "plain"))
	h.Close()
	_ = slave.Close()
	<-done

	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("Did not expect ANSI sequences with ColorNever, got %q", out.String())
	}
	if !strings.Contains(out.String(), "[ERROR] plain") {
		t.Errorf("Expected plain record, got %q", out.String())
	}
}
