package views

// Window is the range of tree rows that fits on screen. It scrolls only as far
// as needed to keep the cursor visible.
type Window struct {
	size   int
	offset int
}

// NewWindow creates a window showing size rows
func NewWindow(size int) *Window {
	w := &Window{}
	w.SetSize(size)
	return w
}

// SetSize changes how many rows are shown
func (w *Window) SetSize(size int) {
	if size <= 0 {
		size = 10
	}
	w.size = size
}

// Follow scrolls so that cursor is inside the window and returns the visible range
func (w *Window) Follow(cursor, total int) (start, end int) {
	if total <= w.size {
		w.offset = 0
		return 0, total
	}
	if cursor < w.offset {
		w.offset = cursor
	} else if cursor >= w.offset+w.size {
		w.offset = cursor - w.size + 1
	}
	w.offset = max(0, min(w.offset, total-w.size))
	return w.offset, w.offset + w.size
}
