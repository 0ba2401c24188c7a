package dist

import "sort"

// interval is a half-open row range [Lo, Hi).
type interval struct {
	Lo, Hi int
}

// RowIndexSet is a sorted union of disjoint row-index intervals, used to
// describe which global rows a rank owns (§4.F). The teacher has no
// index-set abstraction of its own; this generalizes the single
// contiguous-partition case (the common one) to arbitrary unions so
// non-contiguous ownership (e.g. after a fill-reducing reorder) is still
// representable.
type RowIndexSet struct {
	intervals []interval
}

// NewContiguousRowIndexSet returns the row set [lo, hi).
func NewContiguousRowIndexSet(lo, hi int) RowIndexSet {
	if lo >= hi {
		return RowIndexSet{}
	}
	return RowIndexSet{intervals: []interval{{Lo: lo, Hi: hi}}}
}

// EvenRowDistribution splits [0, globalRows) into size contiguous blocks,
// as close to equal as possible (the remainder spread over the first
// ranks), the common case for row-partitioned distributed matrices.
func EvenRowDistribution(globalRows, size int) []RowIndexSet {
	base := globalRows / size
	rem := globalRows % size
	sets := make([]RowIndexSet, size)
	row := 0
	for r := 0; r < size; r++ {
		n := base
		if r < rem {
			n++
		}
		sets[r] = NewContiguousRowIndexSet(row, row+n)
		row += n
	}
	return sets
}

// Len returns the total number of rows in the set.
func (s RowIndexSet) Len() int {
	n := 0
	for _, iv := range s.intervals {
		n += iv.Hi - iv.Lo
	}
	return n
}

// Contains reports whether row is in the set.
func (s RowIndexSet) Contains(row int) bool {
	i := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].Hi > row })
	return i < len(s.intervals) && s.intervals[i].Lo <= row
}

// Rows returns the set's rows in ascending order.
func (s RowIndexSet) Rows() []int {
	var out []int
	for _, iv := range s.intervals {
		for r := iv.Lo; r < iv.Hi; r++ {
			out = append(out, r)
		}
	}
	return out
}

// LocalIndex returns the 0-based offset of row within this rank's owned
// rows (the position it would occupy in Rows()), or -1 if not owned.
func (s RowIndexSet) LocalIndex(row int) int {
	offset := 0
	for _, iv := range s.intervals {
		if row >= iv.Lo && row < iv.Hi {
			return offset + row - iv.Lo
		}
		offset += iv.Hi - iv.Lo
	}
	return -1
}
