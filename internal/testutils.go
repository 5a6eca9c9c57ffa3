package internal

import (
	"fmt"
	"testing"
	"time"

	"github.com/minaorangina/spades/deepequal"
)

// FailureMessage reports a got/want mismatch
func FailureMessage(t *testing.T, got, want any) {
	t.Helper()
	t.Errorf("\ngot:  %+v\nwant: %+v", got, want)
}

// AssertNoError checks for the non-existence of an error
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

// AssertErrored checks for the existence of an error
func AssertErrored(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, but got nil")
	}
}

// AssertEqual checks that the values are equal
func AssertEqual(t *testing.T, got, want any) {
	t.Helper()

	if got != want {
		FailureMessage(t, got, want)
	}
}

// AssertStructurallyEqual checks that plain values (decoded JSON, slices,
// maps) are equal, ignoring numeric kinds and key order.
func AssertStructurallyEqual(t *testing.T, got, want any) {
	t.Helper()

	eq, err := deepequal.Equal(got, want)
	if err != nil {
		t.Fatalf("cannot compare %T with %T: %s", got, want, err)
	}
	if !eq {
		FailureMessage(t, got, want)
	}
}

// AssertTrue checks that the value is true
func AssertTrue(t *testing.T, got bool, msgAndArgs ...any) {
	t.Helper()

	if !got {
		t.Error("expected to be true, but it wasn't. " + fmt.Sprint(msgAndArgs...))
	}
}

// Within fails the test if assert does not return within d
func Within(t *testing.T, d time.Duration, assert func()) {
	t.Helper()

	done := make(chan struct{}, 1)

	go func() {
		assert()
		done <- struct{}{}
	}()

	select {
	case <-time.After(d):
		t.Error("timed out")
	case <-done:
	}
}
