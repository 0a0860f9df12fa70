// Package validation detects referential action graphs that SQL Server
// refuses to create: cascade cycles, self-relations with cascading actions,
// and multiple cascade paths between two models.
package validation

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/satishbabariya/prisma-cascade/internal/debug"
)

// Validate inspects g and returns every referential action issue in a stable
// order: onDelete issues before onUpdate issues, then by the declaration
// order of the relation field. An empty result means the graph is valid.
//
// Validate never modifies g. It only returns an error, wrapping
// ErrMalformedGraph, when g itself is inconsistent.
func Validate(g *Graph) ([]ValidationIssue, error) {
	start := time.Now()

	ix, err := buildIndex(g)
	if err != nil {
		return nil, err
	}

	c := newCollector()
	checkSelfRelations(ix, c)
	for _, kind := range ActionKinds() {
		checkCycles(ix, kind, c)
		checkMultiplePaths(ix, kind, c)
	}
	issues := c.sorted()

	debug.Debug("validated referential actions",
		"models", len(ix.models),
		"relations", len(ix.edges),
		"issues", len(issues),
		"elapsed", time.Since(start),
	)
	return issues, nil
}

// edge is a relation field with its endpoints resolved to node indexes.
type edge struct {
	idx  int
	from int
	to   int
	ref  EdgeRef
	rf   *RelationField
}

// graphIndex is the adjacency-list view of a Graph. Edge indexes follow
// declaration order.
type graphIndex struct {
	models []string
	edges  []edge
	out    [][]int
	in     [][]int
}

func buildIndex(g *Graph) (*graphIndex, error) {
	if g == nil {
		return nil, malformed("graph is nil")
	}

	nodeOf := make(map[string]int, len(g.Models))
	ix := &graphIndex{
		models: make([]string, len(g.Models)),
		out:    make([][]int, len(g.Models)),
		in:     make([][]int, len(g.Models)),
	}
	for i, m := range g.Models {
		if m.Name == "" {
			return nil, malformed("model at position %d has no name", i)
		}
		if _, dup := nodeOf[m.Name]; dup {
			return nil, malformed("model %q is declared more than once", m.Name)
		}
		nodeOf[m.Name] = i
		ix.models[i] = m.Name
	}

	for mi := range g.Models {
		m := &g.Models[mi]
		scalars := make(map[string]bool, len(m.ScalarFields))
		for _, sf := range m.ScalarFields {
			scalars[sf.Name] = true
		}

		seen := make(map[string]bool, len(m.Relations))
		for fi := range m.Relations {
			rf := &m.Relations[fi]
			ref := EdgeRef{Model: m.Name, Field: rf.Name}
			if rf.Name == "" {
				return nil, malformed("relation field at position %d of model %q has no name", fi, m.Name)
			}
			if seen[rf.Name] {
				return nil, malformed("relation field %s is declared more than once", ref)
			}
			seen[rf.Name] = true

			to, ok := nodeOf[rf.References]
			if !ok {
				return nil, malformed("relation field %s references unknown model %q", ref, rf.References)
			}
			for _, f := range rf.Fields {
				if !scalars[f] {
					return nil, malformed("relation field %s uses unknown scalar field %q", ref, f)
				}
			}
			for _, kind := range ActionKinds() {
				if a := rf.Action(kind); !a.Value.Valid() {
					return nil, malformed("relation field %s has unresolved %s action %q", ref, kind, a.Value)
				}
			}

			e := edge{idx: len(ix.edges), from: mi, to: to, ref: ref, rf: rf}
			ix.edges = append(ix.edges, e)
			ix.out[mi] = append(ix.out[mi], e.idx)
			ix.in[to] = append(ix.in[to], e.idx)
		}
	}
	return ix, nil
}

// cascades reports whether edge ei takes part in the path analysis of kind.
// Self edges are handled by checkSelfRelations.
func (ix *graphIndex) cascades(ei int, kind ActionKind) bool {
	e := ix.edges[ei]
	return e.from != e.to && e.rf.Action(kind).Value.IsCascading()
}

func (ix *graphIndex) refs(path []int) []EdgeRef {
	out := make([]EdgeRef, len(path))
	for i, ei := range path {
		out[i] = ix.edges[ei].ref
	}
	return out
}

// checkSelfRelations reports self edges that are not NoAction on both kinds.
// The issue is filed under the first offending kind only.
func checkSelfRelations(ix *graphIndex, c *collector) {
	for _, e := range ix.edges {
		if e.from != e.to {
			continue
		}
		for _, kind := range ActionKinds() {
			if !e.rf.Action(kind).Value.IsCascading() {
				continue
			}
			c.add("self", e.idx, ValidationIssue{
				Kind:       IssueSelfRelation,
				ActionKind: kind,
				Edge:       e.ref,
				Paths:      [][]EdgeRef{{e.ref}},
				Message:    selfRelationMessage(e.rf),
			})
			break
		}
	}
}

type pendingIssue struct {
	issue ValidationIssue
	edge  int
	seq   int
}

// collector deduplicates issues by (action kind, issue kind, edge, cause).
// Multiple-paths issues share one cause, so each edge carries at most one.
type collector struct {
	seen  map[string]bool
	items []pendingIssue
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool)}
}

func (c *collector) add(cause string, edgeIdx int, issue ValidationIssue) {
	key := fmt.Sprintf("%d|%d|%d|%s", issue.ActionKind, issue.Kind, edgeIdx, cause)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.items = append(c.items, pendingIssue{issue: issue, edge: edgeIdx, seq: len(c.items)})
}

func (c *collector) sorted() []ValidationIssue {
	items := slices.Clone(c.items)
	slices.SortFunc(items, func(a, b pendingIssue) int {
		return cmp.Or(
			cmp.Compare(a.issue.ActionKind, b.issue.ActionKind),
			cmp.Compare(a.edge, b.edge),
			cmp.Compare(a.issue.Kind, b.issue.Kind),
			cmp.Compare(a.seq, b.seq),
		)
	})
	out := make([]ValidationIssue, len(items))
	for i, it := range items {
		out[i] = it.issue
	}
	return out
}
