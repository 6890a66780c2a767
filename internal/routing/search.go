package routing

import (
	"container/heap"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// FindPath computes a minimum-cost path from source to destination over the
// weighted projection. A nil heuristic yields uniform-cost search (Dijkstra);
// a non-nil heuristic yields A*, prioritizing the frontier by accumulated
// weight plus the estimate. With non-negative edge weights and an admissible
// heuristic both variants return a path of equal total weight.
//
// The frontier uses the lazy-decrease-key pattern: improved distances push a
// duplicate entry and stale entries are skipped when popped. Tie-breaking
// between equal-cost paths follows heap insertion order and is not otherwise
// specified.
//
// The boolean result is false when source or destination is absent from the
// projection's location set, or when the frontier exhausts without reaching
// the destination.
func FindPath(p *Projection, source, destination domain.LocationID, h Heuristic) ([]domain.LocationID, bool) {
	if !p.HasLocation(source) || !p.HasLocation(destination) {
		return nil, false
	}
	if source == destination {
		return []domain.LocationID{source}, true
	}

	dist := map[domain.LocationID]float64{source: 0}
	prev := make(map[domain.LocationID]domain.LocationID)
	settled := make(map[domain.LocationID]bool)

	frontier := &frontierQueue{}
	heap.Init(frontier)
	heap.Push(frontier, &frontierItem{id: source})

	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(*frontierItem)
		u := item.id
		if settled[u] {
			continue
		}
		settled[u] = true
		if u == destination {
			return reconstruct(prev, source, destination), true
		}

		for _, edge := range p.Outgoing(u) {
			v := edge.Destination
			if settled[v] {
				continue
			}
			candidate := dist[u] + edge.Weight
			if best, seen := dist[v]; seen && candidate >= best {
				continue
			}
			dist[v] = candidate
			prev[v] = u
			priority := candidate
			if h != nil {
				priority += h(v)
			}
			heap.Push(frontier, &frontierItem{id: v, priority: priority})
		}
	}

	return nil, false
}

func reconstruct(prev map[domain.LocationID]domain.LocationID, source, destination domain.LocationID) []domain.LocationID {
	path := []domain.LocationID{destination}
	for at := destination; at != source; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// frontierItem pairs a location with its frontier priority (accumulated
// weight, plus the heuristic estimate under A*).
type frontierItem struct {
	id       domain.LocationID
	priority float64
}

// frontierQueue is a min-heap of frontier items ordered by priority.
type frontierQueue []*frontierItem

func (q frontierQueue) Len() int            { return len(q) }
func (q frontierQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q frontierQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *frontierQueue) Push(x interface{}) { *q = append(*q, x.(*frontierItem)) }

func (q *frontierQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
