// Package gamevariant identifies which of the three supported titles a run
// targets. It's a closed, three-way selector threaded explicitly through
// the catalog and validator rather than held as global state, matching the
// teacher's practice of passing an AnalysisContext rather than reading
// ambient globals.
package gamevariant

// Variant selects one of the three supported games. It's a closed set: game
// kind tables are written as exhaustive switches over it, and adding a
// fourth variant is a real code change, not configuration.
type Variant int

const (
	// Dynasty is the medieval dynasty simulator.
	Dynasty Variant = iota
	// Imperium is the classical-era grand strategy title.
	Imperium
	// Commonwealth is the 19th-century society simulator.
	Commonwealth
)

func (v Variant) String() string {
	switch v {
	case Dynasty:
		return "dynasty"
	case Imperium:
		return "imperium"
	case Commonwealth:
		return "commonwealth"
	default:
		return "unknown"
	}
}

// ParseVariant maps a config/CLI string onto a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "dynasty":
		return Dynasty, true
	case "imperium":
		return Imperium, true
	case "commonwealth":
		return Commonwealth, true
	default:
		return 0, false
	}
}

// Set is a bitmask over Variant, used by catalog and table entries that
// apply to more than one game (e.g. a scope or trigger common to all three).
type Set uint8

const (
	SetDynasty      Set = 1 << Dynasty
	SetImperium     Set = 1 << Imperium
	SetCommonwealth Set = 1 << Commonwealth
	SetAll          Set = SetDynasty | SetImperium | SetCommonwealth
)

// Has reports whether v is a member of the set.
func (s Set) Has(v Variant) bool { return s&(1<<v) != 0 }

// Of builds a Set from individual variants, for table literals like
// gamevariant.Of(gamevariant.Dynasty, gamevariant.Imperium).
func Of(vs ...Variant) Set {
	var s Set
	for _, v := range vs {
		s |= 1 << v
	}
	return s
}
