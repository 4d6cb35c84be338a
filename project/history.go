package project

// history is a bounded ring of whole document snapshots. Oldest snapshot is
// evicted when ring is full, redo is discarded by any new mutation.
type history struct {
	ring  []document
	start int
	count int
	redo  []document
}

func newHistory(depth int) *history {
	return &history{ring: make([]document, max(depth, 1))}
}

func (h *history) depth() int {
	return len(h.ring)
}

// record stores snapshot taken before a mutation.
func (h *history) record(d document) {
	h.push(d)
	clear(h.redo)
	h.redo = h.redo[:0]
}

func (h *history) push(d document) {
	if h.count == len(h.ring) {
		h.ring[h.start] = document{}
		h.start = (h.start + 1) % len(h.ring)
		h.count--
	}
	h.ring[(h.start+h.count)%len(h.ring)] = d
	h.count++
}

func (h *history) pop() (document, bool) {
	if h.count == 0 {
		return document{}, false
	}
	h.count--
	i := (h.start + h.count) % len(h.ring)
	d := h.ring[i]
	h.ring[i] = document{}
	return d, true
}

// undo exchanges current document for the previous snapshot.
func (h *history) undo(current document) (document, bool) {
	prev, ok := h.pop()
	if !ok {
		return document{}, false
	}
	h.redo = append(h.redo, current)
	return prev, true
}

// redo exchanges current document for the last undone one.
func (h *history) redoStep(current document) (document, bool) {
	if len(h.redo) == 0 {
		return document{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = document{}
	h.redo = h.redo[:len(h.redo)-1]
	h.push(current)
	return next, true
}

func (h *history) canUndo() bool {
	return h.count > 0
}

func (h *history) canRedo() bool {
	return len(h.redo) > 0
}

func (h *history) reset() {
	clear(h.ring)
	h.start, h.count = 0, 0
	clear(h.redo)
	h.redo = h.redo[:0]
}
