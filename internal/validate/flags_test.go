package validate

import (
	"testing"

	"github.com/hallowmark/scriptguard/internal/diag"
)

func TestWithCapOnlyTightens(t *testing.T) {
	f := RootFlags() // SeverityCap: Fatal (no real constraint — nothing outranks Fatal)
	f = f.WithCap(diag.Warning)
	if f.SeverityCap != diag.Warning {
		t.Fatalf("got cap %v after WithCap(Warning), want Warning", f.SeverityCap)
	}
	// A looser cap passed afterward must not loosen it back.
	f = f.WithCap(diag.Error)
	if f.SeverityCap != diag.Warning {
		t.Errorf("got cap %v after WithCap(Error) on a tighter cap, want it to stay Warning", f.SeverityCap)
	}
}

func TestCapSeverityDemotesButNeverPromotes(t *testing.T) {
	f := RootFlags().WithCap(diag.Warning)
	if got := f.capSeverity(diag.Fatal); got != diag.Warning {
		t.Errorf("capSeverity(Fatal) under a Warning cap = %v, want Warning", got)
	}
	if got := f.capSeverity(diag.Advice); got != diag.Advice {
		t.Errorf("capSeverity(Advice) under a Warning cap = %v, want unchanged Advice", got)
	}
}

func TestPushMacroDetectsCycle(t *testing.T) {
	f := RootFlags()
	f, ok, cycle := f.pushMacro("a", 64)
	if !ok || cycle {
		t.Fatalf("first push of a: ok=%v cycle=%v, want ok=true cycle=false", ok, cycle)
	}
	_, ok, cycle = f.pushMacro("a", 64)
	if ok || !cycle {
		t.Fatalf("re-push of a already on the chain: ok=%v cycle=%v, want ok=false cycle=true", ok, cycle)
	}
}

func TestPushMacroEnforcesDepthCap(t *testing.T) {
	f := RootFlags()
	var ok bool
	for i := 0; i < 3; i++ {
		f, ok, _ = f.pushMacro(string(rune('a'+i)), 3)
		if !ok {
			t.Fatalf("push %d unexpectedly rejected before the depth cap", i)
		}
	}
	_, ok, cycle := f.pushMacro("d", 3)
	if ok || cycle {
		t.Fatalf("push past depth cap: ok=%v cycle=%v, want ok=false cycle=false", ok, cycle)
	}
}

func TestNegateTogglesBothWays(t *testing.T) {
	f := RootFlags()
	if f.Negated {
		t.Fatal("RootFlags should start un-negated")
	}
	f = f.Negate()
	if !f.Negated {
		t.Fatal("expected Negated after one Negate() call")
	}
	f = f.Negate()
	if f.Negated {
		t.Fatal("expected Negated to flip back off after a second Negate() call")
	}
}
