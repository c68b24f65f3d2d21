package assert

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/iov-one/trinity/errors"
)

// recorder counts failures instead of stopping the test.
type recorder struct {
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestIsErr(t *testing.T) {
	var noErr *errors.Error

	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"same root":                {want: errors.ErrNotFound, got: errors.ErrNotFound},
		"wrapped root":             {want: errors.ErrNotFound, got: errors.Wrap(errors.ErrNotFound, "challenge")},
		"other root":               {want: errors.ErrNotFound, got: errors.ErrUnauthorized, wantFail: true},
		"untyped nil against root": {want: nil, got: errors.ErrNotFound, wantFail: true},
		"both nil":                 {want: nil, got: nil},
		"typed nil expects none":   {want: noErr, got: nil},
		"typed nil got an error":   {want: noErr, got: errors.ErrNotFound, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{}
			IsErr(r, tc.want, tc.got)
			if failed := len(r.failures) > 0; failed != tc.wantFail {
				t.Fatalf("want failure %v, got %q", tc.wantFail, r.failures)
			}
		})
	}
}

func TestABCICode(t *testing.T) {
	cases := map[string]struct {
		err      error
		code     uint32
		wantFail bool
	}{
		"registered":   {err: errors.Wrap(errors.ErrUnauthorized, "not the moderator"), code: 2},
		"success":      {err: nil, code: 0},
		"unregistered": {err: stdlib.New("boom"), code: 1},
		"mismatch":     {err: errors.ErrNotFound, code: 2, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{}
			ABCICode(r, tc.code, tc.err)
			if failed := len(r.failures) > 0; failed != tc.wantFail {
				t.Fatalf("want failure %v, got %q", tc.wantFail, r.failures)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var (
		ptr   *int
		slice []byte
		err   error
	)
	for _, v := range []interface{}{nil, ptr, slice, err} {
		r := &recorder{}
		Nil(r, v)
		if len(r.failures) != 0 {
			t.Fatalf("%T reported as not nil", v)
		}
	}

	r := &recorder{}
	Nil(r, 0)
	Nil(r, "")
	Nil(r, errors.ErrEmpty)
	if len(r.failures) != 3 {
		t.Fatalf("want 3 failures, got %q", r.failures)
	}
}

func TestPanics(t *testing.T) {
	r := &recorder{}
	Panics(r, func() { panic("boom") })
	Panics(r, func() {})
	if len(r.failures) != 1 {
		t.Fatalf("want 1 failure, got %q", r.failures)
	}
}
