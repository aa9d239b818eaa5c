package bluetoothutil

import (
	"errors"
	"runtime"
	"testing"
)

func TestIsBenignEnableError(t *testing.T) {
	if isBenignEnableError(nil) {
		t.Fatal("nil error must not be benign")
	}

	err := errors.New("Incorrect function.")
	got := isBenignEnableError(err)
	want := runtime.GOOS == "windows"
	if got != want {
		t.Fatalf("expected benign=%t on %s, got %t", want, runtime.GOOS, got)
	}

	if isBenignEnableError(errors.New("adapter is powered off")) {
		t.Fatal("real adapter errors must not be benign")
	}
}

func TestEnableAdapterRejectsNilAdapter(t *testing.T) {
	if err := enableAdapter(nil); err == nil {
		t.Fatal("expected error for nil adapter")
	}
}
