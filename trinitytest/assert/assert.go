// Package assert holds the few checks handler tests need, failing the test
// at the first mismatch.
package assert

import (
	"reflect"

	"github.com/iov-one/trinity/errors"
)

// Tester is the part of testing.TB the checks use.
type Tester interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// Nil accepts untyped nil and nil values of any nillable kind, so a nil
// *Challenge or a nil error from a function returning a concrete type pass.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !nilValue(value) {
		// %+v prints the stack of a wrapped error
		t.Fatalf("want nil, got %+v", value)
	}
}

func nilValue(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal compares with reflect.DeepEqual.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("panic expected")
		}
	}()
	fn()
}

// ABCICode checks the code a client would see for err.
func ABCICode(t Tester, want uint32, err error) {
	t.Helper()
	if code, log := errors.ABCIInfo(err, false); code != want {
		t.Fatalf("want ABCI code %d, got %d: %s", want, code, log)
	}
}

// IsErr passes when got is want or wraps it. A nil *errors.Error as want
// expects no error at all.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
