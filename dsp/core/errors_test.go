package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestEveryKindHasHint(t *testing.T) {
	t.Parallel()

	fallback := Kind(0).Hint()
	for k := KindRead; k <= KindConfig; k++ {
		if k.Hint() == "" || k.Hint() == fallback {
			t.Fatalf("%v has no dedicated hint", k)
		}
		if strings.HasPrefix(k.String(), "kind(") {
			t.Fatalf("kind %d has no name", int(k))
		}
	}
}

func TestReadErrorKeepsPathAndCause(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("import: %w", ReadError("/no/such.wav", fs.ErrNotExist))

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error in chain")
	}
	if e.Path != "/no/such.wav" {
		t.Fatalf("path = %q", e.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if !errors.Is(err, ErrRead) {
		t.Fatal("sentinel match failed")
	}
	if errors.Is(err, ErrWrite) {
		t.Fatal("matched the wrong kind")
	}
	if e.Hint() != KindRead.Hint() {
		t.Fatalf("hint = %q", e.Hint())
	}
}

func TestParamErrorMessage(t *testing.T) {
	t.Parallel()

	err := ParamError("room_size", 1.5, 0, 1)
	msg := err.Error()
	for _, want := range []string{"room_size", "1.5", "[0, 1]"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
	if KindOf(err) != KindInvalidParameter {
		t.Fatalf("KindOf = %v", KindOf(err))
	}
}

func TestKindOfForeignError(t *testing.T) {
	t.Parallel()

	if got := KindOf(errors.New("plain")); got != 0 {
		t.Fatalf("KindOf(plain) = %v, want 0", got)
	}
	if Wrap(KindChain, nil, "x") != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
}
