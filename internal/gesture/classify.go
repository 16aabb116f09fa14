package gesture

import "fmt"

// namedPattern binds an exact finger-state vector to a gesture id.
type namedPattern struct {
	fingers FingerStates
	id      string
}

// namedPatterns is an ordered rule table. It is matched before the numeric
// fallback, so vectors that would also satisfy a finger count (thumbs_up is
// one finger, peace is two) still classify as their named gesture.
var namedPatterns = []namedPattern{
	{FingerStates{false, false, false, false, false}, "fist"},
	{FingerStates{true, true, true, true, true}, "open"},
	{FingerStates{true, false, false, false, false}, "thumbs_up"},
	{FingerStates{false, true, true, false, false}, "peace"},
	{FingerStates{false, true, false, false, true}, "rock_on"},
	{FingerStates{false, true, false, false, false}, "pointing"},
	{FingerStates{true, false, false, false, true}, "call_me"},
}

// Classify maps a finger-state vector to a gesture id. Vectors not covered by
// a named pattern fall back to a number_N id from the extended-finger count.
// An empty string means no gesture and never produces an event.
func Classify(f FingerStates) string {
	for _, p := range namedPatterns {
		if f == p.fingers {
			return p.id
		}
	}

	if count := f.Count(); count <= 5 {
		return fmt.Sprintf("number_%d", count)
	}

	return ""
}
