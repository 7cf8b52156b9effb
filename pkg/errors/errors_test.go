package errors

import (
	"errors"
	"fmt"
	"testing"

	"tradeagent/pkg/errors/ecode"
)

func TestDecodeErr(t *testing.T) {
	cause := fmt.Errorf("db down")
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"nil", nil, ecode.Success, "success"},
		{"coded", New(ecode.NotFound, "position not found"), ecode.NotFound, "position not found"},
		{"wrapped", Wrap(cause, ecode.ServerErr, "persist alert"), ecode.ServerErr, "persist alert: db down"},
		{"plain", cause, ecode.ServerErr, "db down"},
		{"nested", fmt.Errorf("outer: %w", New(ecode.InvalidParams, "bad price")), ecode.InvalidParams, "bad price"},
	}
	for _, c := range cases {
		code, msg := DecodeErr(c.err)
		if code != c.code || msg != c.message {
			t.Errorf("%s: got (%d, %q), want (%d, %q)", c.name, code, msg, c.code, c.message)
		}
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ecode.ServerErr, "execute")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause")
	}
	if Wrap(nil, ecode.ServerErr, "noop") != nil {
		t.Fatal("wrapping nil should return nil")
	}
}
