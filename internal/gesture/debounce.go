package gesture

import "time"

// DefaultCooldown is the minimum hold time before the same gesture is
// recorded again.
const DefaultCooldown = 500 * time.Millisecond

// Debouncer suppresses repeated emissions of the same gesture within a
// cooldown window. It is driven from a single goroutine and keeps no locks;
// frames with no hand simply produce no Observe call and leave the state
// untouched.
type Debouncer struct {
	cooldown time.Duration
	last     string
	lastEmit time.Time
}

// NewDebouncer creates a Debouncer with the given cooldown. A non-positive
// cooldown falls back to DefaultCooldown.
func NewDebouncer(cooldown time.Duration) *Debouncer {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Debouncer{cooldown: cooldown}
}

// Observe reports whether the classified gesture qualifies as a new event at
// the given time: either the gesture changed, or the cooldown since the last
// emission has elapsed. On a qualifying observation the debounce state
// advances to (id, now).
func (d *Debouncer) Observe(id string, now time.Time) bool {
	if id != d.last || now.Sub(d.lastEmit) > d.cooldown {
		d.last = id
		d.lastEmit = now
		return true
	}
	return false
}

// Last returns the most recently emitted gesture id.
func (d *Debouncer) Last() string {
	return d.last
}
