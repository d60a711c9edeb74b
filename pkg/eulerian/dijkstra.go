// Shortest-path search backing the defensive Eulerization pass (§4.5). The
// Bidirectional Pairing invariant (§3) should make every kept component's
// degrees already balanced, so this path is expected to rarely run — kept
// as a fallback rather than relied upon. Grounded on the teacher's
// pkg/routing/dijkstra.go MinHeap, generalized from uint32 to float64
// distances since edge lengths here are great-circle meters, not
// precomputed integer weights.
package eulerian

// pqItem is a min-heap entry: node index and its tentative distance.
type pqItem struct {
	node uint32
	dist float64
}

// minHeap is a concrete-typed min-heap, avoiding the interface boxing of
// container/heap. Entries are pushed on every distance improvement; stale
// ones are skipped on pop.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node uint32, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
