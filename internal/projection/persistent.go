package projection

// PersistentIndex is a reference to a cell that survives structural edits.
// The zero value never resolves.
type PersistentIndex struct {
	slot int
	gen  uint32
}

// handle is one arena slot. A handle points at row under parent, where parent
// is nil only for the root. Structural brackets rebase rows and parents; a
// handle whose row is removed stays allocated but dead until released.
type handle struct {
	parent *mirror
	row    int
	col    Column
	gen    uint32
	used   bool
	live   bool
}

type handleTable struct {
	slots []handle
	free  []int
}

func (t *handleTable) alloc(h handle) PersistentIndex {
	var slot int
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
		h.gen = t.slots[slot].gen
	} else {
		slot = len(t.slots)
		t.slots = append(t.slots, handle{gen: 1})
		h.gen = 1
	}
	h.used, h.live = true, true
	t.slots[slot] = h
	// slots are one-based so the zero PersistentIndex never resolves
	return PersistentIndex{slot: slot + 1, gen: h.gen}
}

func (t *handleTable) get(p PersistentIndex) *handle {
	i := p.slot - 1
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	h := &t.slots[i]
	if !h.used || h.gen != p.gen {
		return nil
	}
	return h
}

func (t *handleTable) release(p PersistentIndex) {
	h := t.get(p)
	if h == nil {
		return
	}
	gen := h.gen + 1
	*h = handle{gen: gen}
	t.free = append(t.free, p.slot-1)
}

// each calls fn for every live handle
func (t *handleTable) each(fn func(h *handle)) {
	for i := range t.slots {
		if t.slots[i].live {
			fn(&t.slots[i])
		}
	}
}

func (t *handleTable) liveCount() int {
	n := 0
	t.each(func(*handle) { n++ })
	return n
}

// Persist creates a persistent reference to i
func (m *Model) Persist(i Index) PersistentIndex {
	if i.m == nil {
		return PersistentIndex{}
	}
	if i.m.parent == nil {
		return m.handles.alloc(handle{row: -1, col: i.col})
	}
	return m.handles.alloc(handle{parent: i.m.parent, row: i.m.row(), col: i.col})
}

// Lookup resolves a persistent reference to a transient index. It reports
// false if the referenced row has been removed or the reference released.
func (m *Model) Lookup(p PersistentIndex) (Index, bool) {
	h := m.handles.get(p)
	if h == nil || !h.live {
		return Index{}, false
	}
	if h.parent == nil {
		return Index{row: -1, col: h.col, m: m.root}, true
	}
	if h.row < 0 || h.row >= len(h.parent.children) {
		return Index{}, false
	}
	return Index{row: h.row, col: h.col, m: h.parent.children[h.row]}, true
}

// Release frees a persistent reference. Releasing twice is a no-op.
func (m *Model) Release(p PersistentIndex) {
	m.handles.release(p)
}

// LiveHandles returns the number of persistent references that still resolve
func (m *Model) LiveHandles() int {
	return m.handles.liveCount()
}

func (m *Model) rebaseInsert(parent *mirror, first, count int) {
	m.handles.each(func(h *handle) {
		if h.parent == parent && h.row >= first {
			h.row += count
		}
	})
}

func (m *Model) rebaseRemove(parent *mirror, first, last int, removed []*mirror) {
	count := last - first + 1
	m.handles.each(func(h *handle) {
		switch {
		case h.parent == parent && h.row >= first && h.row <= last:
			h.live = false
		case h.parent == parent && h.row > last:
			h.row -= count
		case h.parent != nil && h.parent.inside(removed):
			h.live = false
		}
	})
}

// rebaseMoveWithin handles a move inside one folder. dst counts positions
// after the source row has been taken out, so rows between the two slide one
// step toward the vacated slot.
func (m *Model) rebaseMoveWithin(parent *mirror, src, dst int) {
	m.handles.each(func(h *handle) {
		if h.parent != parent {
			return
		}
		switch {
		case h.row == src:
			h.row = dst
		case src < dst && h.row > src && h.row <= dst:
			h.row--
		case dst < src && h.row >= dst && h.row < src:
			h.row++
		}
	})
}

// rebaseMoveAcross handles a move between folders. The source range after the
// vacated row closes up, the destination range from dst opens up, and handles
// on the moved row follow it to its new parent.
func (m *Model) rebaseMoveAcross(srcParent *mirror, src int, dstParent *mirror, dst int) {
	m.handles.each(func(h *handle) {
		switch {
		case h.parent == srcParent && h.row == src:
			if dstParent == nil {
				h.live = false
				return
			}
			h.parent, h.row = dstParent, dst
		case h.parent == srcParent && h.row > src:
			h.row--
		case dstParent != nil && h.parent == dstParent && h.row >= dst:
			h.row++
		}
	})
}
