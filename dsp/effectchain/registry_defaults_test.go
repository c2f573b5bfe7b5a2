package effectchain

import (
	"strings"
	"testing"
)

func TestDefaultRegistryTypes(t *testing.T) {
	t.Parallel()

	got := strings.Join(DefaultRegistry().Types(), ",")
	want := "compressor,delay,eq,gain,gate,limiter,reverb,saturation"
	if got != want {
		t.Fatalf("Types() = %s, want %s", got, want)
	}
}

func TestDefaultRegistryBuildsEveryType(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	for _, typ := range reg.Types() {
		t.Run(typ, func(t *testing.T) {
			fx, err := reg.New(typ, "")
			if err != nil {
				t.Fatal(err)
			}
			if fx.Type() != typ || fx.ID() != typ || !fx.Enabled() {
				t.Fatalf("New(%q) = type %q id %q enabled %v", typ, fx.Type(), fx.ID(), fx.Enabled())
			}
			if err := fx.Prepare(44100, 256); err != nil {
				t.Fatal(err)
			}
			if len(fx.Params()) != len(fx.Spec()) {
				t.Fatalf("Params() has %d entries, Spec() %d", len(fx.Params()), len(fx.Spec()))
			}
		})
	}
}

func TestRegisterBuiltinsTwicePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	RegisterBuiltins(DefaultRegistry())
}
