package validation

import (
	"fmt"
	"strings"
)

// IssueKind classifies what a ValidationIssue reports.
type IssueKind int

const (
	IssueSelfRelation IssueKind = iota
	IssueCycle
	IssueMultiplePaths
)

// String returns a stable identifier for the kind.
func (k IssueKind) String() string {
	switch k {
	case IssueSelfRelation:
		return "self-relation"
	case IssueCycle:
		return "cycle"
	case IssueMultiplePaths:
		return "multiple-paths"
	default:
		return fmt.Sprintf("IssueKind(%d)", int(k))
	}
}

// ValidationIssue points at one relation field whose referential actions the
// database would reject.
type ValidationIssue struct {
	Kind       IssueKind
	ActionKind ActionKind
	// Edge is the relation field the issue is attached to.
	Edge EdgeRef
	// Paths holds the offending edge sequences. A cycle or self-relation has
	// exactly one path; a multiple-paths issue has the edge-disjoint paths
	// between the pair of models it was found for.
	Paths   [][]EdgeRef
	Message string
}

// Path returns the first offending path.
func (i ValidationIssue) Path() []EdgeRef {
	if len(i.Paths) == 0 {
		return nil
	}
	return i.Paths[0]
}

// String renders the issue on one line.
func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s [%s %s]: %s", i.Edge, i.ActionKind, i.Kind, i.Message)
}

// FormatPath renders a path as `A.b → B.c`.
func FormatPath(path []EdgeRef) string {
	parts := make([]string, len(path))
	for i, e := range path {
		parts[i] = e.String()
	}
	return strings.Join(parts, " → ")
}

func selfRelationMessage(rf *RelationField) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A self-relation must have `onDelete` and `onUpdate` referential actions set to `NoAction` in one of the @relation attributes. (relation `%s`)", rf.RelationName)
	for _, kind := range ActionKinds() {
		if a := rf.Action(kind); a.Value.IsCascading() {
			fmt.Fprintf(&b, " (%s)", a.describe(kind))
		}
	}
	return b.String()
}

func cycleMessage(kind ActionKind, action Action, cycle []EdgeRef) string {
	return fmt.Sprintf(
		"Reference causes a cycle. One of the @relation attributes in this cycle must have `onDelete` and `onUpdate` referential actions set to `NoAction`. Cycle path: %s. (%s)",
		FormatPath(cycle),
		action.describe(kind),
	)
}

func multiplePathsMessage(kind ActionKind, action Action, referenced, referencing string, paths [][]EdgeRef) string {
	rendered := make([]string, len(paths))
	for i, p := range paths {
		rendered[i] = FormatPath(p)
	}
	return fmt.Sprintf(
		"When any of the records in model `%s` is %s, the referential actions on the relations cause cascading to model `%s` through multiple paths: %s. Please break one of these paths by setting the `onUpdate` and `onDelete` to `NoAction`. (%s)",
		referenced,
		kind.verb(),
		referencing,
		strings.Join(rendered, "; "),
		action.describe(kind),
	)
}
