// Package router builds the one-shot-immutable all-pairs shortest-path
// table over a transit graph and recovers individual paths as handles.
package router

import (
	"math"
	"sync"

	"github.com/mlyundin/bus-db/pkg/transit"
)

const noEdge = ^uint32(0)

// minHeap is a concrete-typed min-heap over (vertex, dist) pairs,
// adapted from pkg/routing/dijkstra.go's MinHeap — kept concrete to
// avoid interface-boxing overhead, widened from uint32 to float64
// distances since transit edge weights are minutes, not integer
// milliseconds.
type minHeap struct {
	items []pqItem
}

type pqItem struct {
	node uint32
	dist float64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) push(node uint32, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) pop() pqItem {
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
		left, right := 2*i+1, 2*i+2
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

// RouteHandle is a recovered path: its total weight, edge count, and
// (internally) the edge ids walked from "from" to "to" in order.
type RouteHandle struct {
	ID        int
	Weight    float64
	EdgeCount int
	edges     []uint32
}

// Router is the sealed all-pairs shortest-path table plus a small
// handle arena for recovered paths (spec's design-note option (b): a
// map-backed arena that reclaims on explicit ReleaseRoute).
type Router struct {
	graph *transit.Graph

	dist     [][]float64
	prevEdge [][]uint32

	mu      sync.Mutex
	handles map[int]*RouteHandle
	nextID  int
}

// Build runs one-to-all Dijkstra from every vertex and materializes the
// |V|² {prev_edge, distance} table required by the router contract.
func Build(g *transit.Graph) *Router {
	n := g.NumVertices
	r := &Router{
		graph:   g,
		dist:    make([][]float64, n),
		prevEdge: make([][]uint32, n),
		handles: make(map[int]*RouteHandle),
	}

	for src := uint32(0); src < n; src++ {
		r.dist[src], r.prevEdge[src] = dijkstraFrom(g, src)
	}

	return r
}

func dijkstraFrom(g *transit.Graph, src uint32) ([]float64, []uint32) {
	n := g.NumVertices
	dist := make([]float64, n)
	prevEdge := make([]uint32, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prevEdge[i] = noEdge
	}
	dist[src] = 0

	var pq minHeap
	pq.push(src, 0)

	for pq.Len() > 0 {
		cur := pq.pop()
		if cur.dist > dist[cur.node] {
			continue // stale entry
		}
		for _, eid := range g.EdgesFrom(cur.node) {
			e := g.Edge(eid)
			cand := cur.dist + e.Weight
			if cand < dist[e.To] {
				dist[e.To] = cand
				prevEdge[e.To] = eid
				pq.push(e.To, cand)
			}
		}
	}

	return dist, prevEdge
}

// BuildRoute recovers the shortest path from->to, returning ok=false if
// unreachable. from==to short-circuits to a zero-cost, zero-edge route
// without consulting the table.
func (r *Router) BuildRoute(from, to uint32) (*RouteHandle, bool) {
	if from == to {
		return r.newHandle(0, nil), true
	}

	d := r.dist[from][to]
	if math.IsInf(d, 1) {
		return nil, false
	}

	var edges []uint32
	cur := to
	for cur != from {
		eid := r.prevEdge[from][cur]
		if eid == noEdge {
			return nil, false // unreachable: assertion-level inconsistency guard
		}
		edges = append(edges, eid)
		cur = r.graph.Edge(eid).From
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return r.newHandle(d, edges), true
}

func (r *Router) newHandle(weight float64, edges []uint32) *RouteHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	h := &RouteHandle{ID: id, Weight: weight, EdgeCount: len(edges), edges: edges}
	r.handles[id] = h
	return h
}

// GetRouteEdge returns the i-th edge id (0 ≤ i < EdgeCount) along the
// recovered path, in insertion order from "from" to "to".
func (r *Router) GetRouteEdge(id int, i int) (uint32, bool) {
	r.mu.Lock()
	h, ok := r.handles[id]
	r.mu.Unlock()
	if !ok || i < 0 || i >= len(h.edges) {
		return 0, false
	}
	return h.edges[i], true
}

// ReleaseRoute frees the retained path buffer. Handle ids come from an
// increasing counter, so a released id is not handed out again.
func (r *Router) ReleaseRoute(id int) {
	r.mu.Lock()
	delete(r.handles, id)
	r.mu.Unlock()
}

// Graph returns the underlying transit graph, for decoding legs.
func (r *Router) Graph() *transit.Graph { return r.graph }
