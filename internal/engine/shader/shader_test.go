package shader

import (
	"errors"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := error(&Error{Stage: "fragment", Log: "0:12: 'foo' : undeclared identifier\n\x00"})

	want := "fragment shader: 0:12: 'foo' : undeclared identifier"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var se *Error
	if !errors.As(err, &se) || se.Stage != "fragment" {
		t.Errorf("errors.As did not recover the stage: %v", se)
	}
}
