package stepless

import (
	kitlog "github.com/go-kit/kit/log"
	"github.com/google/uuid"
)

// Key is an opaque stable handle to a Body stored in a Universe. Keys are
// generated fresh by Universe.Add and never reused.
type Key uuid.UUID

// String renders a Key the same way uuid.UUID does, for logging and export.
func (k Key) String() string {
	return uuid.UUID(k).String()
}

// Universe is a keyed container of bodies, tracking which keys' predicted
// events may be stale (the modified set) and the current simulation time.
//
// Ported from the original source's Universe (stepless/universe.py).
type Universe struct {
	t        float64
	contents map[Key]*Body
	modified map[Key]struct{}
	logger   kitlog.Logger
}

// NewUniverse returns an empty Universe starting at time t0. A nil logger
// is replaced with a no-op logger.
func NewUniverse(t0 float64, logger kitlog.Logger) *Universe {
	if logger == nil {
		logger = nopLogger
	}
	return &Universe{
		t:        t0,
		contents: make(map[Key]*Body),
		modified: make(map[Key]struct{}),
		logger:   logger,
	}
}

// T returns the Universe's current simulation time.
func (u *Universe) T() float64 {
	return u.t
}

// Add stores body under a freshly generated key, marks it modified, and
// returns a View bound to it.
func (u *Universe) Add(body Body) View {
	key := Key(uuid.New())
	u.contents[key] = &body
	u.modified[key] = struct{}{}
	return View{universe: u, key: key}
}

// Get returns a View bound to key. It does not check that key exists; a
// View over a missing key panics on first use, the same way a stale Python
// UUID would raise a KeyError.
func (u *Universe) Get(key Key) View {
	return View{universe: u, key: key}
}

// Iterate returns a View for every body currently in the Universe.
func (u *Universe) Iterate() []View {
	views := make([]View, 0, len(u.contents))
	for key := range u.contents {
		views = append(views, View{universe: u, key: key})
	}
	return views
}

// Len returns the number of bodies in the Universe.
func (u *Universe) Len() int {
	return len(u.contents)
}

// Keys returns every key currently stored, in no particular order.
func (u *Universe) Keys() []Key {
	keys := make([]Key, 0, len(u.contents))
	for key := range u.contents {
		keys = append(keys, key)
	}
	return keys
}

func (u *Universe) body(key Key) *Body {
	b, ok := u.contents[key]
	if !ok {
		panic("stepless: no such body key in this universe")
	}
	return b
}

func (u *Universe) markModified(key Key) {
	u.modified[key] = struct{}{}
}

// AdvancePastNextCollision resolves the single soonest pairwise collision
// across all O(N^2) pairs, independent of any heap. It is the heap-free
// reference algorithm from the original source's
// Universe.advance_past_next_collision / _compute_next_collision_times,
// kept as a small-scene cross-check for Timeline's heap-driven result (see
// timeline_test.go). Restitution is taken as B1.Dot(B2), matching
// Timeline.DoNextCollision; it does not use or update any CollisionHeap.
func (u *Universe) AdvancePastNextCollision() bool {
	bestT := posInf
	var ka, kb Key
	found := false
	keys := u.Keys()
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			t := u.contents[keys[i]].ComputeNextCollisionTime(*u.contents[keys[j]], u.t)
			if t < bestT {
				bestT, ka, kb, found = t, keys[i], keys[j], true
			}
		}
	}
	if !found {
		return false
	}
	a, b := u.contents[ka], u.contents[kb]
	impulse := a.GetCollisionImpulse(*b, bestT, u.logger)
	impulse = impulse.WithRestitution(a.B.Dot(b.B))
	ia, ib := impulse.Split(a.M, b.M)
	*a = a.ApplyImpulseValue(ia)
	*b = b.ApplyImpulseValue(ib)
	u.t = bestT
	u.markModified(ka)
	u.markModified(kb)
	return true
}
