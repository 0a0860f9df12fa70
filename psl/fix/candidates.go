package fix

import (
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

// Conflict groups the relation fields that take part in one cycle or one set
// of multiple cascade paths. Breaking any one of them resolves the conflict.
type Conflict struct {
	Kind       validation.IssueKind
	ActionKind validation.ActionKind
	Message    string
	Edges      []validation.EdgeRef
}

// Conflicts groups issues into conflicts in issue order. Issues that share a
// path set are one conflict; the edges are listed in path order.
func Conflicts(issues []validation.ValidationIssue) []Conflict {
	var out []Conflict
	index := make(map[string]int)
	for _, issue := range issues {
		key := conflictKey(issue)
		if i, ok := index[key]; ok {
			out[i].Edges = appendUnique(out[i].Edges, issue.Edge)
			continue
		}
		c := Conflict{
			Kind:       issue.Kind,
			ActionKind: issue.ActionKind,
			Message:    issue.Message,
		}
		for _, path := range issue.Paths {
			for _, ref := range path {
				c.Edges = appendUnique(c.Edges, ref)
			}
		}
		c.Edges = appendUnique(c.Edges, issue.Edge)
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

func conflictKey(issue validation.ValidationIssue) string {
	key := issue.Kind.String() + "|" + issue.ActionKind.String()
	if issue.Kind == validation.IssueSelfRelation {
		return key + "|" + issue.Edge.String()
	}
	for _, path := range issue.Paths {
		key += "|" + validation.FormatPath(path)
	}
	return key
}

func appendUnique(refs []validation.EdgeRef, ref validation.EdgeRef) []validation.EdgeRef {
	for _, r := range refs {
		if r == ref {
			return refs
		}
	}
	return append(refs, ref)
}
