// Package graph implements the directed-graph primitive (§4.B): node and
// edge insertion, node enumeration, and topological sort via Kahn's
// algorithm. It underlies the execution-log slicer's dependent-cell
// ordering.
package graph

// Graph is a directed graph keyed by a caller-supplied identity function.
type Graph[N any] struct {
	idFunc func(N) string
	nodes  map[string]N
	out    map[string]map[string]struct{}
	in     map[string]map[string]struct{}
}

// New creates an empty Graph using idFunc to derive node identity.
func New[N any](idFunc func(N) string) *Graph[N] {
	return &Graph[N]{
		idFunc: idFunc,
		nodes:  map[string]N{},
		out:    map[string]map[string]struct{}{},
		in:     map[string]map[string]struct{}{},
	}
}

func (g *Graph[N]) ensure(n N) string {
	id := g.idFunc(n)
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = n
		g.out[id] = map[string]struct{}{}
		g.in[id] = map[string]struct{}{}
	}
	return id
}

// AddEdge adds an edge from -> to, implicitly adding either endpoint as a
// node if not already present.
func (g *Graph[N]) AddEdge(from, to N) {
	f := g.ensure(from)
	t := g.ensure(to)
	g.out[f][t] = struct{}{}
	g.in[t][f] = struct{}{}
}

// AddNode registers n with no edges, if not already present.
func (g *Graph[N]) AddNode(n N) { g.ensure(n) }

// Nodes returns every known node.
func (g *Graph[N]) Nodes() []N {
	out := make([]N, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// Successors returns the nodes n has an edge to.
func (g *Graph[N]) Successors(n N) []N {
	id := g.idFunc(n)
	out := make([]N, 0, len(g.out[id]))
	for succID := range g.out[id] {
		out = append(out, g.nodes[succID])
	}
	return out
}

// Predecessors returns the nodes that have an edge to n.
func (g *Graph[N]) Predecessors(n N) []N {
	id := g.idFunc(n)
	out := make([]N, 0, len(g.in[id]))
	for predID := range g.in[id] {
		out = append(out, g.nodes[predID])
	}
	return out
}

// TopoSort returns a linear order consistent with edges when the graph is
// a DAG (Kahn's algorithm over a working copy of adjacency). When the
// graph has a cycle, the remaining (unorderable) nodes are appended in an
// unspecified but total order, so the result always contains every node
// exactly once.
func (g *Graph[N]) TopoSort() []N {
	inDegree := make(map[string]int, len(g.nodes))
	working := make(map[string]map[string]struct{}, len(g.nodes))
	for id, succs := range g.out {
		working[id] = make(map[string]struct{}, len(succs))
		for s := range succs {
			working[id][s] = struct{}{}
		}
	}
	for id := range g.nodes {
		inDegree[id] = len(g.in[id])
	}

	var queue []string
	for id := range g.nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []string
	visited := map[string]bool{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)
		for succID := range working[id] {
			inDegree[succID]--
			if inDegree[succID] == 0 {
				queue = append(queue, succID)
			}
		}
	}

	// anything left over sits on a cycle; append in map order (unspecified
	// but total).
	if len(order) < len(g.nodes) {
		for id := range g.nodes {
			if !visited[id] {
				order = append(order, id)
				visited[id] = true
			}
		}
	}

	out := make([]N, 0, len(order))
	for _, id := range order {
		out = append(out, g.nodes[id])
	}
	return out
}
