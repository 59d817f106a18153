package clip

import (
	"errors"
	"testing"
)

func TestCopyUsesWriter(t *testing.T) {
	var got string
	w := func(s string) error { got = s; return nil }
	if err := Copy(w, "npx create-react-app app"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got != "npx create-react-app app" {
		t.Errorf("writer got %q", got)
	}
}

func TestCopySurfacesError(t *testing.T) {
	boom := errors.New("boom")
	if err := Copy(func(string) error { return boom }, "x"); !errors.Is(err, boom) {
		t.Errorf("Copy error = %v, want boom", err)
	}
}
