package validation

import (
	"strconv"
	"strings"
)

// checkCycles reports one issue per edge of every simple cascade cycle.
func checkCycles(ix *graphIndex, kind ActionKind, c *collector) {
	for _, cycle := range ix.simpleCycles(kind) {
		refs := ix.refs(cycle)
		cause := "cycle:" + pathKey(cycle)
		for _, ei := range cycle {
			e := ix.edges[ei]
			c.add(cause, ei, ValidationIssue{
				Kind:       IssueCycle,
				ActionKind: kind,
				Edge:       e.ref,
				Paths:      [][]EdgeRef{refs},
				Message:    cycleMessage(kind, e.rf.Action(kind), refs),
			})
		}
	}
}

// simpleCycles enumerates every simple cycle over the cascading edges of
// kind. Each cycle is found once, from its lowest-indexed model, and is
// returned rotated so that it starts with its earliest-declared edge.
// The search from a model only enters models that can lead back to it.
func (ix *graphIndex) simpleCycles(kind ActionKind) [][]int {
	var (
		cycles  [][]int
		path    []int
		onPath  = make([]bool, len(ix.models))
		returns []bool
	)

	var visit func(start, node int)
	visit = func(start, node int) {
		for _, ei := range ix.out[node] {
			if !ix.cascades(ei, kind) {
				continue
			}
			next := ix.edges[ei].to
			switch {
			case next == start:
				cycle := append(append([]int(nil), path...), ei)
				cycles = append(cycles, rotateToFirstEdge(cycle))
			case next > start && returns[next] && !onPath[next]:
				onPath[next] = true
				path = append(path, ei)
				visit(start, next)
				path = path[:len(path)-1]
				onPath[next] = false
			}
		}
	}

	for start := range ix.models {
		returns = ix.leadsBackTo(start, kind)
		onPath[start] = true
		visit(start, start)
		onPath[start] = false
	}
	return cycles
}

// leadsBackTo marks the models above start that reach start over cascading
// edges without passing a model below it.
func (ix *graphIndex) leadsBackTo(start int, kind ActionKind) []bool {
	marked := make([]bool, len(ix.models))
	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, ei := range ix.in[node] {
			prev := ix.edges[ei].from
			if prev <= start || marked[prev] || !ix.cascades(ei, kind) {
				continue
			}
			marked[prev] = true
			queue = append(queue, prev)
		}
	}
	return marked
}

func rotateToFirstEdge(cycle []int) []int {
	lowest := 0
	for i, ei := range cycle {
		if ei < cycle[lowest] {
			lowest = i
		}
	}
	return append(append([]int(nil), cycle[lowest:]...), cycle[:lowest]...)
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, ei := range path {
		parts[i] = strconv.Itoa(ei)
	}
	return strings.Join(parts, ",")
}
