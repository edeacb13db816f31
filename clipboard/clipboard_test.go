package clipboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func stubEnv(t *testing.T, env map[string]string, tty bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevEnv, prevTTY, prevWrite := osc52Out, getenv, stdoutIsTerminal, systemWrite
	t.Cleanup(func() {
		osc52Out, getenv, stdoutIsTerminal, systemWrite = prevOut, prevEnv, prevTTY, prevWrite
	})
	osc52Out = &buf
	getenv = func(k string) string { return env[k] }
	stdoutIsTerminal = func() bool { return tty }
	systemWrite = func(string) error { return errors.New("no clipboard tool") }
	return &buf
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	buf := stubEnv(t, map[string]string{"TERM": "xterm-256color"}, true)
	if err := Copy("hello"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;c;") || !strings.Contains(out, "aGVsbG8=") {
		t.Errorf("sequence = %q", out)
	}
}

func TestCopyTmuxWrapsSequence(t *testing.T) {
	buf := stubEnv(t, map[string]string{"TERM": "screen-256color", "TMUX": "/tmp/tmux"}, true)
	if err := Copy("hello"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\x1bPtmux;") {
		t.Errorf("sequence = %q", buf.String())
	}
}

func TestCopyUnavailable(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"dumb":  {"TERM": "dumb"},
		"unset": {},
	} {
		t.Run(name, func(t *testing.T) {
			buf := stubEnv(t, env, true)
			if err := Copy("x"); !errors.Is(err, ErrUnavailable) {
				t.Errorf("err = %v", err)
			}
			if buf.Len() != 0 {
				t.Error("nothing should be written")
			}
		})
	}

	stubEnv(t, map[string]string{"TERM": "xterm"}, false)
	if err := Copy("x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("non-tty err = %v", err)
	}
}

func TestCopyPrefersSystemClipboard(t *testing.T) {
	buf := stubEnv(t, map[string]string{"TERM": "xterm"}, true)
	var got string
	systemWrite = func(s string) error { got = s; return nil }
	if err := Copy("rows"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got != "rows" && buf.Len() == 0 {
		t.Error("text went nowhere")
	}
}
