// Package spgemm implements sparse-times-sparse matrix multiplication via a
// multi-way merge. Each output row is assigned to one of three tiers by its
// worst-case fan-in (the number of A-row non-zeros feeding it); all three
// tiers merge with the same binary min-heap (heapMerge), so the tiers do not
// differ in merge strategy.
//
// A "warp" here is SubgroupWidth, a plain constant standing in for the
// cooperative-group width a real SIMT device would supply; see DESIGN.md.
package spgemm

import (
	"github.com/sparsekit/ginkgo-go"
	"github.com/sparsekit/ginkgo-go/errs"
)

// SubgroupWidth models the cooperative-group ("subwarp") size; it is the
// fan-in limit of Tier 1.
const SubgroupWidth = 32

// tierShortLimit and tierMediumLimit set the row-fan-in boundaries between
// Tier 1/2/3: Tier 1 takes rows with fan-in up to SubgroupWidth, Tier 2 up
// to 512, and Tier 3 everything else.
const (
	tierShortLimit  = SubgroupWidth
	tierMediumLimit = 512
)

// entry is one (column, value) contribution accumulated while merging a
// single output row.
type entry struct {
	col int
	val float64
}

// Multiply computes C = A*B using the tiered multi-way merge. Each row of A
// is merged once by mergeRow: the merged entries are kept and C's row
// pointers are accumulated in the same loop, and the kept entries are then
// copied into C's column-index and value arrays. There is no separate count
// pass.
func Multiply(a, b *sparse.CSR) (*sparse.CSR, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, errs.New(errs.DimensionMismatch, "spgemm.Multiply", "A.cols must equal B.rows")
	}

	aRowPtrs, aCols, aVals := a.RowPtrs(), a.ColIdxs(), a.Values()
	bRowPtrs, bCols, bVals := b.RowPtrs(), b.ColIdxs(), b.Values()

	rowEntries := make([][]entry, ar)
	indptr := make([]int, ar+1)
	nnz := 0
	for i := 0; i < ar; i++ {
		fanIn := aRowPtrs[i+1] - aRowPtrs[i]
		row := mergeRow(i, fanIn, aRowPtrs, aCols, aVals, bRowPtrs, bCols, bVals)
		rowEntries[i] = row
		indptr[i] = nnz
		nnz += len(row)
	}
	indptr[ar] = nnz

	ind := make([]int, nnz)
	data := make([]float64, nnz)
	pos := 0
	for i := 0; i < ar; i++ {
		for _, e := range rowEntries[i] {
			ind[pos] = e.col
			data[pos] = e.val
			pos++
		}
	}
	return sparse.NewCSR(ar, bc, indptr, ind, data), nil
}

// mergeRow dispatches row i to the tier matching its A-side fan-in.
func mergeRow(i, fanIn int, aRowPtrs, aCols []int, aVals []float64, bRowPtrs, bCols []int, bVals []float64) []entry {
	sources := make([][]entry, 0, fanIn)
	for k := aRowPtrs[i]; k < aRowPtrs[i+1]; k++ {
		col, aVal := aCols[k], aVals[k]
		start, end := bRowPtrs[col], bRowPtrs[col+1]
		src := make([]entry, end-start)
		for j := start; j < end; j++ {
			src[j-start] = entry{col: bCols[j], val: aVal * bVals[j]}
		}
		sources = append(sources, src)
	}

	switch {
	case fanIn <= tierShortLimit:
		return mergeTier1(sources)
	case fanIn <= tierMediumLimit:
		return mergeTier2(sources)
	default:
		return mergeTier3(sources)
	}
}

// mergeTier1 merges rows with fan-in up to SubgroupWidth. It calls
// heapMerge, the binary min-heap merge shared by all tiers; there is no
// shift-register merge.
func mergeTier1(sources [][]entry) []entry {
	return heapMerge(sources, SubgroupWidth)
}

// mergeTier2 merges rows with fan-in up to tierMediumLimit. It passes the
// row's fan-in to heapMerge as the arity, which heapMerge ignores: the merge
// is the same binary min-heap as in the other tiers.
func mergeTier2(sources [][]entry) []entry {
	return heapMerge(sources, len(sources))
}

// mergeTier3 merges long rows with a complete heap whose arity is split
// across register/shared/scratch tiers on a real device; here that split
// collapses to a single plain binary heap over all sources, since Go has no
// register/shared-memory distinction to preserve.
func mergeTier3(sources [][]entry) []entry {
	return heapMerge(sources, len(sources))
}

// heapNode tracks one source's current read position for the k-ary merge.
type heapNode struct {
	srcIdx int
	pos    int
}

// heapMerge performs a k-way merge of sources (each sorted ascending by
// column, as CSR rows are) via a binary min-heap over (column, source)
// keyed nodes, summing duplicate columns as they're popped -- this is the
// shift-register/heap family's shared core; arity is a documented
// simplification (see DESIGN.md), not a distinguishing behavior.
func heapMerge(sources [][]entry, arity int) []entry {
	_ = arity
	var heap []heapNode
	push := func(n heapNode) {
		heap = append(heap, n)
		i := len(heap) - 1
		for i > 0 {
			parent := (i - 1) / 2
			if sources[heap[parent].srcIdx][heap[parent].pos].col <= sources[heap[i].srcIdx][heap[i].pos].col {
				break
			}
			heap[parent], heap[i] = heap[i], heap[parent]
			i = parent
		}
	}
	pop := func() heapNode {
		top := heap[0]
		last := len(heap) - 1
		heap[0] = heap[last]
		heap = heap[:last]
		i := 0
		for {
			left, right := 2*i+1, 2*i+2
			smallest := i
			if left < len(heap) && sources[heap[left].srcIdx][heap[left].pos].col < sources[heap[smallest].srcIdx][heap[smallest].pos].col {
				smallest = left
			}
			if right < len(heap) && sources[heap[right].srcIdx][heap[right].pos].col < sources[heap[smallest].srcIdx][heap[smallest].pos].col {
				smallest = right
			}
			if smallest == i {
				break
			}
			heap[i], heap[smallest] = heap[smallest], heap[i]
			i = smallest
		}
		return top
	}

	for s, src := range sources {
		if len(src) > 0 {
			push(heapNode{srcIdx: s, pos: 0})
		}
	}

	var out []entry
	for len(heap) > 0 {
		n := pop()
		col := sources[n.srcIdx][n.pos].col
		sum := sources[n.srcIdx][n.pos].val
		if n.pos+1 < len(sources[n.srcIdx]) {
			push(heapNode{srcIdx: n.srcIdx, pos: n.pos + 1})
		}
		for len(heap) > 0 && sources[heap[0].srcIdx][heap[0].pos].col == col {
			dup := pop()
			sum += sources[dup.srcIdx][dup.pos].val
			if dup.pos+1 < len(sources[dup.srcIdx]) {
				push(heapNode{srcIdx: dup.srcIdx, pos: dup.pos + 1})
			}
		}
		out = append(out, entry{col: col, val: sum})
	}
	return out
}
