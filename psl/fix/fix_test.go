package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schema "github.com/satishbabariya/prisma-cascade/psl/parsing/v2"
	"github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

const source = `model Post {
  id       Int  @id
  authorId Int
  // who wrote it
  author   User @relation("Authored", fields: [authorId], references: [id], onDelete: Cascade) @map("author_ref")
}

model User {
  id      Int    @id
  posts   Post[] @relation("Authored")
  bossId  Int?
  boss    User?  @relation("Boss", fields: [bossId], references: [id])
  reports User[] @relation("Boss")
  plain   Int    @default(1)
}
`

func parse(t *testing.T, src string) *ast.SchemaAst {
	t.Helper()
	s, err := schema.ParseSchemaString("schema.prisma", src)
	require.NoError(t, err)
	return s
}

func TestBreakRelationReplacesExistingAction(t *testing.T) {
	out, err := BreakRelation(source, parse(t, source), "Post", "author")
	require.NoError(t, err)

	assert.Contains(t, out,
		`  author   User @relation("Authored", fields: [authorId], references: [id], onDelete: NoAction, onUpdate: NoAction) @map("author_ref")`+"\n")
	assert.Contains(t, out, "  // who wrote it\n", "comments are kept")

	// The rewritten schema parses and the relation no longer cascades.
	again := parse(t, out)
	attr := again.Model("Post").Field("author").Attribute("relation")
	for _, arg := range []string{"onDelete", "onUpdate"} {
		v, ok := ast.AsConstant(attr.Argument(arg).Value)
		require.True(t, ok)
		assert.Equal(t, "NoAction", v)
	}
}

func TestBreakRelationAppendsActions(t *testing.T) {
	out, err := BreakRelation(source, parse(t, source), "User", "boss")
	require.NoError(t, err)
	assert.Contains(t, out,
		`boss    User?  @relation("Boss", fields: [bossId], references: [id], onDelete: NoAction, onUpdate: NoAction)`+"\n")
}

func TestBreakRelationWithoutParens(t *testing.T) {
	src := "model A {\n  id  Int @id\n  bId Int\n  b   B   @relation\n}\n"
	out, err := BreakRelation(src, parse(t, src), "A", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "  b   B   @relation(onDelete: NoAction, onUpdate: NoAction)\n")
}

func TestBreakRelationErrors(t *testing.T) {
	s := parse(t, source)

	_, err := BreakRelation(source, s, "Ghost", "author")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = BreakRelation(source, s, "Post", "ghost")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = BreakRelation(source, s, "User", "plain")
	assert.ErrorIs(t, err, ErrNoRelationAttribute)
}

func TestBreakRelationsAppliesBackToFront(t *testing.T) {
	edges := []validation.EdgeRef{
		{Model: "Post", Field: "author"},
		{Model: "User", Field: "boss"},
		{Model: "Post", Field: "author"},
	}
	out, err := BreakRelations(source, parse(t, source), edges)
	require.NoError(t, err)

	again := parse(t, out)
	for _, ref := range edges {
		attr := again.Model(ref.Model).Field(ref.Field).Attribute("relation")
		v, _ := ast.AsConstant(attr.Argument("onUpdate").Value)
		assert.Equal(t, "NoAction", v, ref.String())
	}
}

func TestConflicts(t *testing.T) {
	cycle := [][]validation.EdgeRef{{{Model: "A", Field: "b"}, {Model: "B", Field: "a"}}}
	issues := []validation.ValidationIssue{
		{Kind: validation.IssueCycle, ActionKind: validation.OnUpdate, Edge: cycle[0][0], Paths: cycle, Message: "cycle"},
		{Kind: validation.IssueCycle, ActionKind: validation.OnUpdate, Edge: cycle[0][1], Paths: cycle, Message: "cycle"},
		{Kind: validation.IssueSelfRelation, ActionKind: validation.OnDelete, Edge: validation.EdgeRef{Model: "N", Field: "parent"},
			Paths: [][]validation.EdgeRef{{{Model: "N", Field: "parent"}}}, Message: "self"},
	}

	conflicts := Conflicts(issues)
	require.Len(t, conflicts, 2)
	assert.Equal(t, cycle[0], conflicts[0].Edges)
	assert.Equal(t, validation.IssueSelfRelation, conflicts[1].Kind)
	assert.Equal(t, []validation.EdgeRef{{Model: "N", Field: "parent"}}, conflicts[1].Edges)
}
