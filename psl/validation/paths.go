package validation

// checkMultiplePaths reports the edges of cascade paths that reach the same
// model from the same model without sharing any edge. Two paths that only
// differ after a common prefix, or before a common suffix, share an edge and
// are reported at the narrower pair of models instead.
//
// Each pair is decided with a unit-capacity max flow. An edge is reported
// once per action kind, under the first pair it is found in: sources in
// declaration order, targets nearest first.
func checkMultiplePaths(ix *graphIndex, kind ActionKind, c *collector) {
	outDeg, inDeg := ix.cascadeDegrees(kind)
	for src := range ix.models {
		if outDeg[src] < 2 {
			continue
		}
		for _, dst := range ix.reachableFrom(src, kind) {
			if inDeg[dst] < 2 {
				continue
			}
			paths := ix.disjointPaths(src, dst, kind)
			if len(paths) < 2 {
				continue
			}

			rendered := make([][]EdgeRef, len(paths))
			for i, p := range paths {
				rendered[i] = ix.refs(p)
			}
			for _, p := range paths {
				for _, ei := range p {
					e := ix.edges[ei]
					c.add("paths", ei, ValidationIssue{
						Kind:       IssueMultiplePaths,
						ActionKind: kind,
						Edge:       e.ref,
						Paths:      rendered,
						Message:    multiplePathsMessage(kind, e.rf.Action(kind), ix.models[dst], ix.models[src], rendered),
					})
				}
			}
		}
	}
}

func (ix *graphIndex) cascadeDegrees(kind ActionKind) (out, in []int) {
	out = make([]int, len(ix.models))
	in = make([]int, len(ix.models))
	for _, e := range ix.edges {
		if ix.cascades(e.idx, kind) {
			out[e.from]++
			in[e.to]++
		}
	}
	return out, in
}

// reachableFrom lists the models reachable from src over cascading edges in
// breadth-first order, src excluded.
func (ix *graphIndex) reachableFrom(src int, kind ActionKind) []int {
	seen := make([]bool, len(ix.models))
	seen[src] = true
	queue := []int{src}
	var order []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, ei := range ix.out[node] {
			next := ix.edges[ei].to
			if seen[next] || !ix.cascades(ei, kind) {
				continue
			}
			seen[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order
}

// disjointPaths returns a maximum set of edge-disjoint simple cascade paths
// from src to dst. Paths are listed in the declaration order of their first
// edge.
func (ix *graphIndex) disjointPaths(src, dst int, kind ActionKind) [][]int {
	flow := make([]bool, len(ix.edges))
	for ix.augment(src, dst, kind, flow) {
	}
	return ix.decompose(src, dst, flow)
}

// step is how breadth-first search reached a node in the residual graph.
type step struct {
	edge     int
	backward bool
}

// augment finds one shortest augmenting path in the residual graph and pushes
// a unit of flow along it. It reports false when dst is unreachable.
func (ix *graphIndex) augment(src, dst int, kind ActionKind, flow []bool) bool {
	via := make([]step, len(ix.models))
	seen := make([]bool, len(ix.models))
	seen[src] = true
	queue := []int{src}

	visit := func(next int, s step) {
		if !seen[next] {
			seen[next] = true
			via[next] = s
			queue = append(queue, next)
		}
	}

	for len(queue) > 0 && !seen[dst] {
		node := queue[0]
		queue = queue[1:]
		for _, ei := range ix.out[node] {
			if !flow[ei] && ix.cascades(ei, kind) {
				visit(ix.edges[ei].to, step{edge: ei})
			}
		}
		for _, ei := range ix.in[node] {
			if flow[ei] {
				visit(ix.edges[ei].from, step{edge: ei, backward: true})
			}
		}
	}
	if !seen[dst] {
		return false
	}

	for node := dst; node != src; {
		s := via[node]
		e := ix.edges[s.edge]
		if s.backward {
			flow[s.edge] = false
			node = e.to
		} else {
			flow[s.edge] = true
			node = e.from
		}
	}
	return true
}

// decompose splits a flow from src to dst into paths, dropping any loop a
// walk runs into.
func (ix *graphIndex) decompose(src, dst int, flow []bool) [][]int {
	used := make([]bool, len(ix.edges))
	pos := make([]int, len(ix.models))

	var paths [][]int
	for {
		var path []int
		for i := range pos {
			pos[i] = -1
		}
		pos[src] = 0

		node := src
		for node != dst {
			next := -1
			for _, ei := range ix.out[node] {
				if flow[ei] && !used[ei] {
					next = ei
					break
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			to := ix.edges[next].to
			if p := pos[to]; p >= 0 {
				for _, ei := range path[p:] {
					pos[ix.edges[ei].to] = -1
				}
				path = path[:p]
			} else {
				path = append(path, next)
				pos[to] = len(path)
			}
			node = to
		}
		if node != dst || len(path) == 0 {
			return paths
		}
		paths = append(paths, path)
	}
}
