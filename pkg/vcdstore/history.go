package vcdstore

import "sort"

// History is a time-ordered sequence of value changes for one variable:
// parallel sorted-times and values slices, queried with binary search the
// way the source toolkit uses bisect over two parallel Python lists.
type History struct {
	times  []uint64
	values []*BinaryValue
}

// NewHistory builds an empty history.
func NewHistory() *History { return &History{} }

// AddChange appends a change at time t. Callers must add changes in
// non-decreasing time order, matching VCD's own forward-only time axis; a
// change at the same time as the last one overwrites it rather than
// appending a duplicate entry.
func (h *History) AddChange(t uint64, v *BinaryValue) {
	n := len(h.times)
	if n > 0 && h.times[n-1] == t {
		h.values[n-1] = v
		return
	}
	h.times = append(h.times, t)
	h.values = append(h.values, v)
}

// Len returns the number of distinct recorded change times.
func (h *History) Len() int { return len(h.times) }

// ValueAt returns the value in effect at time t: the value of the latest
// change at or before t. ok is false if t precedes the first recorded
// change.
func (h *History) ValueAt(t uint64) (*BinaryValue, bool) {
	i := sort.Search(len(h.times), func(i int) bool { return h.times[i] > t })
	if i == 0 {
		return nil, false
	}
	return h.values[i-1], true
}

// ChangesInRange returns every (time, value) pair with start <= time <= end.
func (h *History) ChangesInRange(start, end uint64) []Change {
	lo := sort.Search(len(h.times), func(i int) bool { return h.times[i] >= start })
	hi := sort.Search(len(h.times), func(i int) bool { return h.times[i] > end })
	out := make([]Change, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, Change{Time: h.times[i], Value: h.values[i]})
	}
	return out
}

// AllChanges returns every recorded change in time order.
func (h *History) AllChanges() []Change {
	return h.ChangesInRange(0, ^uint64(0))
}

// Change is one recorded (time, value) pair.
type Change struct {
	Time  uint64
	Value *BinaryValue
}
