package sortutil

import "sort"

// SortResult reports the outcome of a Sorter.Sort call.
type SortResult int

const (
	Success SortResult = iota
	LoopDetected
	EmptyGraph
)

// Sorter performs a Kahn's-algorithm topological sort over a fixed-size
// node set, ported from the original compiler's TopologicalSorter. An edge
// added with AddEdge(from, to) means "from depends on to" — the symbol
// pass calls this with from = the property/binding being assigned (the
// consumer, spec.md's "A") and to = the property/binding it reads (the
// producer, "B"), so Sort's output places every B before the A's that
// read it.
type Sorter struct {
	n    int
	outs []map[int]struct{}
	ins  []map[int]struct{}
}

func NewSorter(n int) *Sorter {
	s := &Sorter{n: n}
	s.outs = make([]map[int]struct{}, n)
	s.ins = make([]map[int]struct{}, n)
	for i := range s.outs {
		s.outs[i] = make(map[int]struct{})
		s.ins[i] = make(map[int]struct{})
	}
	return s
}

func (s *Sorter) AddEdge(from, to int) {
	s.outs[from][to] = struct{}{}
	s.ins[to][from] = struct{}{}
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Sort returns the nodes in consumer-after-producer order, breaking ties
// between same-layer nodes by ascending id so the result is deterministic.
// On LoopDetected the returned slice is nil; the caller is expected to run
// a LoopDetector over the same edges to find a witness node for the
// diagnostic.
func (s *Sorter) Sort() ([]int, SortResult) {
	if s.n == 0 {
		return nil, EmptyGraph
	}

	outCount := make([]int, s.n)
	withoutOut := make(map[int]struct{})
	remain := make(map[int]struct{})

	for i := 0; i < s.n; i++ {
		if len(s.outs[i]) == 0 {
			withoutOut[i] = struct{}{}
		} else {
			remain[i] = struct{}{}
			outCount[i] = len(s.outs[i])
		}
	}

	if len(withoutOut) == 0 {
		return nil, LoopDetected
	}

	var sorted []int
	for len(remain) > 0 {
		nextLayer := make(map[int]struct{})
		for _, node := range sortedKeys(withoutOut) {
			sorted = append(sorted, node)
			for _, in := range sortedKeys(s.ins[node]) {
				outCount[in]--
				if outCount[in] == 0 {
					nextLayer[in] = struct{}{}
					delete(remain, in)
				}
			}
		}
		withoutOut = nextLayer
		if len(remain) > 0 && len(withoutOut) == 0 {
			return nil, LoopDetected
		}
	}

	for _, node := range sortedKeys(withoutOut) {
		sorted = append(sorted, node)
	}

	return sorted, Success
}
