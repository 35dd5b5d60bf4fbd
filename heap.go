package stepless

import (
	"container/heap"

	kitlog "github.com/go-kit/kit/log"
)

// pairKey identifies an unordered pair of bodies. The original source's
// CollisionHeapKey sorts its two UUIDs in __post_init__; pairKey does the
// same at construction so (k1,k2) and (k2,k1) always compare equal.
type pairKey struct {
	k1, k2 Key
}

func newPairKey(a, b Key) pairKey {
	if lessKey(b, a) {
		a, b = b, a
	}
	return pairKey{a, b}
}

func lessKey(a, b Key) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// heapItem is one entry in the CollisionHeap's backing slice. void items are
// superseded and are skipped (and dropped) lazily at Peek/Pop time, per
// spec.md §4.5.
type heapItem struct {
	pair  pairKey
	t     float64
	void  bool
	index int // maintained by container/heap
}

// innerHeap implements container/heap.Interface ordered by predicted time.
type innerHeap []*heapItem

func (h innerHeap) Len() int            { return len(h) }
func (h innerHeap) Less(i, j int) bool  { return h[i].t < h[j].t }
func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *innerHeap) Push(x any) {
	item := x.(*heapItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// CollisionHeap is a priority queue of predicted pairwise collision times
// with lazy invalidation: pushing a new prediction for a pair marks any
// existing entry for that pair void instead of removing it from the backing
// slice immediately, per spec.md §4.5.
//
// Ported from the original source's CollisionHeap (stepless/timeline.py),
// translated from Python's heapq+dataclass idiom into Go's container/heap
// interface.
type CollisionHeap struct {
	items      innerHeap
	byPair     map[pairKey]*heapItem
	voidCount  int
	entryCount int
	logger     kitlog.Logger
}

// NewCollisionHeap returns an empty CollisionHeap. A nil logger is replaced
// with a no-op logger.
func NewCollisionHeap(logger kitlog.Logger) *CollisionHeap {
	if logger == nil {
		logger = nopLogger
	}
	h := &CollisionHeap{byPair: make(map[pairKey]*heapItem), logger: logger}
	heap.Init(&h.items)
	return h
}

// Push records a fresh prediction t for the pair (k1,k2). Any existing live
// entry for that pair is marked void (and dropped from byPair) first; if t
// is finite a new live entry is inserted. If t is +Inf nothing is stored —
// the pair will never collide given current trajectories.
func (h *CollisionHeap) Push(k1, k2 Key, t float64) {
	pair := newPairKey(k1, k2)
	if old, ok := h.byPair[pair]; ok {
		old.void = true
		h.voidCount++
		delete(h.byPair, pair)
	}
	if !isFinite(t) {
		h.maybeCompact()
		return
	}
	item := &heapItem{pair: pair, t: t}
	heap.Push(&h.items, item)
	h.byPair[pair] = item
	h.entryCount++
	h.maybeCompact()
}

// Peek returns the predicted time of the next live event, or +Inf if the
// heap holds no live entries.
func (h *CollisionHeap) Peek() float64 {
	h.dropVoidTop()
	if len(h.items) == 0 {
		return posInf
	}
	return h.items[0].t
}

// Pop removes and returns the next live event. It panics if the heap is
// empty; callers should check Peek (or Len) first.
func (h *CollisionHeap) Pop() (t float64, k1, k2 Key) {
	h.dropVoidTop()
	if len(h.items) == 0 {
		panic("stepless: Pop on an empty CollisionHeap")
	}
	item := heap.Pop(&h.items).(*heapItem)
	h.entryCount--
	delete(h.byPair, item.pair)
	return item.t, item.pair.k1, item.pair.k2
}

// Len returns the number of live (non-void) entries.
func (h *CollisionHeap) Len() int {
	return h.entryCount - h.voidCount
}

// Contains reports whether the pair (k1,k2) currently has a live entry.
func (h *CollisionHeap) Contains(k1, k2 Key) bool {
	_, ok := h.byPair[newPairKey(k1, k2)]
	return ok
}

func (h *CollisionHeap) dropVoidTop() {
	for len(h.items) > 0 && h.items[0].void {
		heap.Pop(&h.items)
		h.entryCount--
		h.voidCount--
	}
}

// maybeCompact reclaims the backing slice once more than half its entries
// are void, the bound spec.md §5 suggests to keep the void ratio in check.
func (h *CollisionHeap) maybeCompact() {
	if h.entryCount == 0 || h.voidCount <= h.entryCount/2 {
		return
	}
	live := make(innerHeap, 0, h.entryCount-h.voidCount)
	for _, item := range h.items {
		if !item.void {
			live = append(live, item)
		}
	}
	h.items = live
	heap.Init(&h.items)
	h.logger.Log("level", "info", "subsys", "stepless", "message", "compacted collision heap",
		"dropped", h.voidCount, "live", len(h.items))
	h.entryCount = len(h.items)
	h.voidCount = 0
}

func isFinite(t float64) bool {
	return t == t && t != posInf && t != negInf
}

var negInf = -posInf
