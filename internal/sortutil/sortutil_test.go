package sortutil

import "testing"

func TestSorterOrdersProducerBeforeConsumer(t *testing.T) {
	// 0 depends on 1, 1 depends on 2: expect order 2, 1, 0.
	s := NewSorter(3)
	s.AddEdge(0, 1)
	s.AddEdge(1, 2)

	order, result := s.Sort()
	if result != Success {
		t.Fatalf("expect Success, got %v", result)
	}
	want := []int{2, 1, 0}
	if len(order) != len(want) {
		t.Fatalf("expect %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expect %v, got %v", want, order)
		}
	}
}

func TestSorterDetectsCycle(t *testing.T) {
	s := NewSorter(2)
	s.AddEdge(0, 1)
	s.AddEdge(1, 0)

	_, result := s.Sort()
	if result != LoopDetected {
		t.Fatalf("expect LoopDetected, got %v", result)
	}
}

func TestSorterEmptyGraph(t *testing.T) {
	s := NewSorter(0)
	_, result := s.Sort()
	if result != EmptyGraph {
		t.Fatalf("expect EmptyGraph, got %v", result)
	}
}

func TestSorterIndependentNodesInAscendingOrder(t *testing.T) {
	s := NewSorter(3)
	order, result := s.Sort()
	if result != Success {
		t.Fatalf("expect Success, got %v", result)
	}
	want := []int{0, 1, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expect ascending tie-break %v, got %v", want, order)
		}
	}
}

func TestLoopDetectorFindsWitness(t *testing.T) {
	d := NewLoopDetector()
	d.AddEdge(0, 1)
	d.AddEdge(1, 2)
	d.AddEdge(2, 0)

	node, found := d.Detect()
	if !found {
		t.Fatalf("expect a cycle to be found")
	}
	if node < 0 || node > 2 {
		t.Fatalf("expect witness in {0,1,2}, got %d", node)
	}
}

func TestLoopDetectorNoCycle(t *testing.T) {
	d := NewLoopDetector()
	d.AddEdge(0, 1)
	d.AddEdge(1, 2)

	_, found := d.Detect()
	if found {
		t.Fatalf("expect no cycle")
	}
}
