package resource

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Block identifies one membership of a resource in a Tracker. The zero Block
// never refers to a live membership.
type Block struct {
	index      uint32
	generation uint32
}

func (b Block) IsZero() bool { return b.generation == 0 }

const noSlot = -1

type slot struct {
	res        *Shareable
	generation uint32
	prev, next int32
	live       bool
}

// Tracker is a list of resources that share an owning context, for example
// everything that has to be reloaded after the render context is recreated.
// Membership does not hold a reference: tracking never keeps a resource loaded.
//
// Entries live in an arena and are addressed by Block; traversal follows
// insertion order.
type Tracker struct {
	mu    sync.Mutex
	name  string
	slots []slot
	free  []uint32
	head  int32
	tail  int32
	count int
}

func NewTracker(name string) *Tracker {
	return &Tracker{
		name: name,
		head: noSlot,
		tail: noSlot,
	}
}

func (t *Tracker) Name() string { return t.name }

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Track appends r to the tracker. A resource can be tracked by several
// trackers, and more than once by the same one.
func (t *Tracker) Track(r *Shareable) (Block, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot{})
		idx = uint32(len(t.slots) - 1)
	}

	s := &t.slots[idx]
	s.generation++
	s.res = r
	s.live = true
	s.next = noSlot
	s.prev = t.tail
	if t.tail != noSlot {
		t.slots[t.tail].next = int32(idx)
	} else {
		t.head = int32(idx)
	}
	t.tail = int32(idx)
	t.count++

	b := Block{index: idx, generation: s.generation}
	if !r.addLink(t, b) {
		t.removeLocked(b)
		return Block{}, errors.Wrapf(ErrDestroyed, "track %s in %s", r, t.name)
	}
	return b, nil
}

// Untrack removes the membership b. It reports false for stale blocks.
func (t *Tracker) Untrack(b Block) bool {
	t.mu.Lock()
	res := t.lookupLocked(b)
	ok := t.removeLocked(b)
	t.mu.Unlock()

	if ok {
		res.removeLink(t, b)
	}
	return ok
}

// Contains reports whether b is a live membership of this tracker.
func (t *Tracker) Contains(b Block) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookupLocked(b) != nil
}

// Get returns the resource behind b, or nil for a stale block.
func (t *Tracker) Get(b Block) *Shareable {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookupLocked(b)
}

// Snapshot returns the tracked resources in traversal order.
func (t *Tracker) Snapshot() []*Shareable {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Shareable, 0, t.count)
	for i := t.head; i != noSlot; i = t.slots[i].next {
		out = append(out, t.slots[i].res)
	}
	return out
}

// Each calls fn for every membership in traversal order until fn returns
// false. fn runs without the tracker lock, so it may track and untrack.
func (t *Tracker) Each(fn func(Block, *Shareable) bool) {
	type entry struct {
		b   Block
		res *Shareable
	}
	t.mu.Lock()
	entries := make([]entry, 0, t.count)
	for i := t.head; i != noSlot; i = t.slots[i].next {
		s := t.slots[i]
		entries = append(entries, entry{b: Block{index: uint32(i), generation: s.generation}, res: s.res})
	}
	t.mu.Unlock()

	for _, e := range entries {
		if !fn(e.b, e.res) {
			return
		}
	}
}

// InvalidateAll frees every loaded tracked resource, keeping reference
// counts. It returns how many handles were freed.
func (t *Tracker) InvalidateAll() int {
	freed := 0
	for _, r := range t.Snapshot() {
		if r.IsLoaded() {
			r.Invalidate()
			freed++
		}
	}
	Logger().Debug("tracker invalidated", zap.String("tracker", t.name), zap.Int("freed", freed))
	return freed
}

// RestoreAll reloads every tracked resource that is still referenced.
// All resources are attempted; failures are returned together.
func (t *Tracker) RestoreAll() error {
	var result *multierror.Error
	for _, r := range t.Snapshot() {
		if err := r.Restore(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		Logger().Warn("tracker restore incomplete", zap.String("tracker", t.name), zap.Error(err))
		return err
	}
	return nil
}

// untrackLinked removes b on behalf of a resource that already dropped its
// own link.
func (t *Tracker) untrackLinked(b Block) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(b)
}

func (t *Tracker) lookupLocked(b Block) *Shareable {
	if b.IsZero() || int(b.index) >= len(t.slots) {
		return nil
	}
	s := &t.slots[b.index]
	if !s.live || s.generation != b.generation {
		return nil
	}
	return s.res
}

func (t *Tracker) removeLocked(b Block) bool {
	if t.lookupLocked(b) == nil {
		return false
	}
	s := &t.slots[b.index]
	if s.prev != noSlot {
		t.slots[s.prev].next = s.next
	} else {
		t.head = s.next
	}
	if s.next != noSlot {
		t.slots[s.next].prev = s.prev
	} else {
		t.tail = s.prev
	}
	s.res = nil
	s.live = false
	s.prev = noSlot
	s.next = noSlot
	t.free = append(t.free, b.index)
	t.count--
	return true
}
