package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	schema "github.com/satishbabariya/prisma-cascade/psl/parsing/v2"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

func build(t *testing.T, src string) (*Result, diagnostics.Diagnostics) {
	t.Helper()
	ast, err := schema.ParseSchemaString("schema.prisma", src)
	require.NoError(t, err)
	return BuildGraph(ast)
}

func errorMessages(d diagnostics.Diagnostics) []string {
	var out []string
	for _, e := range d.Errors() {
		out = append(out, e.Message())
	}
	return out
}

func warningMessages(d diagnostics.Diagnostics) []string {
	var out []string
	for _, w := range d.Warnings() {
		out = append(out, w.Message())
	}
	return out
}

const blog = `
datasource db {
  provider = "sqlserver"
  url      = env("DATABASE_URL")
}

model User {
  id       Int       @id
  posts    Post[]
  comments Comment[]
}

model Post {
  id       Int       @id
  authorId Int
  author   User      @relation(fields: [authorId], references: [id])
  comments Comment[]
}

model Comment {
  id          Int   @id
  writtenById Int
  postId      Int?
  writtenBy   User  @relation(fields: [writtenById], references: [id], onDelete: NoAction)
  post        Post? @relation("PostComments", fields: [postId], references: [id])
}
`

func TestBuildGraphBlog(t *testing.T) {
	result, diags := build(t, blog)
	require.Empty(t, errorMessages(diags))

	assert.Equal(t, "sqlserver", result.Provider())
	assert.Equal(t, core.RelationModeForeignKeys, result.RelationMode())

	g := result.Graph
	require.Len(t, g.Models, 3)
	assert.Equal(t, []string{"User", "Post", "Comment"}, []string{g.Models[0].Name, g.Models[1].Name, g.Models[2].Name})
	assert.Empty(t, g.Model("User").Relations, "back relation fields are not edges")

	author := g.Model("Post").Relations[0]
	assert.Equal(t, "author", author.Name)
	assert.Equal(t, "User", author.References)
	assert.Equal(t, "PostToUser", author.RelationName)
	assert.False(t, author.Optional)
	assert.Equal(t, validation.Implicit(validation.ReferentialActionNoAction), author.OnDelete)
	assert.Equal(t, validation.Implicit(validation.ReferentialActionCascade), author.OnUpdate)

	comment := g.Model("Comment")
	require.Len(t, comment.Relations, 2)
	writtenBy := comment.Relations[0]
	assert.Equal(t, validation.Explicit(validation.ReferentialActionNoAction), writtenBy.OnDelete)
	assert.Equal(t, "CommentToUser", writtenBy.RelationName)

	post := comment.Relations[1]
	assert.Equal(t, "PostComments", post.RelationName)
	assert.True(t, post.Optional)
	assert.Equal(t, []string{"postId"}, post.Fields)
	assert.Equal(t, validation.Implicit(validation.ReferentialActionSetNull), post.OnDelete)
}

func TestBuildGraphSpans(t *testing.T) {
	result, _ := build(t, blog)

	ref := validation.EdgeRef{Model: "Comment", Field: "writtenBy"}
	spans, ok := result.Spans(ref)
	require.True(t, ok)

	relation := blog[spans.Relation.Start:spans.Relation.End]
	assert.True(t, strings.HasPrefix(relation, "@relation(fields: [writtenById]"), relation)
	require.NotNil(t, spans.OnDelete)
	assert.Equal(t, "NoAction", blog[spans.OnDelete.Start:spans.OnDelete.End])
	assert.Nil(t, spans.OnUpdate)

	assert.Equal(t, *spans.OnDelete, result.IssueSpan(ref, validation.OnDelete))
	assert.Equal(t, spans.Relation, result.IssueSpan(ref, validation.OnUpdate))
	assert.Equal(t, diagnostics.EmptySpan(), result.IssueSpan(validation.EdgeRef{Model: "Nope", Field: "x"}, validation.OnDelete))
}

func TestBuildGraphValidates(t *testing.T) {
	result, diags := build(t, blog)
	require.False(t, diags.HasErrors())

	issues, err := validation.Validate(result.Graph)
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	for _, issue := range issues {
		assert.Equal(t, validation.IssueMultiplePaths, issue.Kind)
		assert.Equal(t, validation.OnUpdate, issue.ActionKind)
	}
}

func TestDefaultRelationName(t *testing.T) {
	assert.Equal(t, "PostToUser", DefaultRelationName("User", "Post"))
	assert.Equal(t, "PostToUser", DefaultRelationName("Post", "User"))
	assert.Equal(t, "NodeToNode", DefaultRelationName("Node", "Node"))
}

func TestRelationErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		wants []string
	}{
		{
			name: "invalid action",
			src: `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [id], onDelete: Explode)
}
model B {
  id Int @id
}`,
			wants: []string{"Invalid referential action: `Explode`. Allowed values: (`Cascade`, `Restrict`, `NoAction`, `SetNull`, `SetDefault`)"},
		},
		{
			name: "restrict on sqlserver",
			src: `
datasource db {
  provider = "sqlserver"
}
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [id], onUpdate: Restrict)
}
model B {
  id Int @id
}`,
			wants: []string{"Invalid referential action: `Restrict`. Allowed values: (`Cascade`, `NoAction`, `SetNull`, `SetDefault`)"},
		},
		{
			name: "unknown fk field",
			src: `
model A {
  id Int @id
  b  B   @relation(fields: [bId], references: [id])
}
model B {
  id Int @id
}`,
			wants: []string{"The following fields do not exist in this model: bId"},
		},
		{
			name: "unknown referenced field",
			src: `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [uuid])
}
model B {
  id Int @id
}`,
			wants: []string{"The following fields do not exist in the related model: uuid"},
		},
		{
			name: "length mismatch",
			src: `
model A {
  id  Int @id
  bId Int
  bX  Int
  b   B   @relation(fields: [bId, bX], references: [id])
}
model B {
  id Int @id
}`,
			wants: []string{"You must specify the same number of fields in `fields` and `references`."},
		},
		{
			name: "missing references",
			src: `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId])
}
model B {
  id Int @id
}`,
			wants: []string{"must specify the `references` argument"},
		},
		{
			name: "required relation over optional scalar",
			src: `
model A {
  id  Int  @id
  bId Int?
  b   B    @relation(fields: [bId], references: [id])
}
model B {
  id Int @id
}`,
			wants: []string{"At least one of those fields is optional. Hence the relation field must be optional as well."},
		},
		{
			name: "actions on back relation",
			src: `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [id])
}
model B {
  id Int @id
  as A[] @relation(onDelete: Cascade)
}`,
			wants: []string{"You must only specify it on the opposite field `b` on model `A`."},
		},
		{
			name: "unknown type",
			src: `
model A {
  id Int   @id
  x  Ghost
}`,
			wants: []string{"Type \"Ghost\" is neither a built-in type"},
		},
		{
			name: "duplicate model",
			src: `
model A {
  id Int @id
}
model A {
  id Int @id
}`,
			wants: []string{"The model \"A\" cannot be defined because a model with that name already exists."},
		},
		{
			name: "unknown provider",
			src: `
datasource db {
  provider = "oracle"
}`,
			wants: []string{"Datasource provider not known: \"oracle\"."},
		},
		{
			name: "unknown relation argument",
			src: `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [id], onLoad: Cascade)
}
model B {
  id Int @id
}`,
			wants: []string{"No such argument `onLoad`."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := build(t, tt.src)
			messages := strings.Join(errorMessages(diags), "\n")
			for _, want := range tt.wants {
				assert.Contains(t, messages, want)
			}
		})
	}
}

func TestInvalidEdgesAreDropped(t *testing.T) {
	result, diags := build(t, `
model A {
  id Int @id
  b  B   @relation(fields: [bId], references: [id])
}
model B {
  id Int @id
}`)
	require.True(t, diags.HasErrors())
	assert.Empty(t, result.Graph.Model("A").Relations)

	_, err := validation.Validate(result.Graph)
	assert.NoError(t, err, "the built graph stays well formed")
}

func TestRelationModePrisma(t *testing.T) {
	result, diags := build(t, `
datasource db {
  provider     = "mysql"
  relationMode = "prisma"
}
model A {
  id  Int @id
  bId Int
  cId Int
  b   B   @relation(fields: [bId], references: [id], onDelete: SetDefault)
  c   C   @relation(fields: [cId], references: [id])

  @@index([cId])
}
model B {
  id Int @id
}
model C {
  id Int @id
}`)
	assert.Equal(t, core.RelationModePrisma, result.RelationMode())
	assert.Contains(t, strings.Join(errorMessages(diags), "\n"),
		"Invalid referential action: `SetDefault`. Allowed values: (`Cascade`, `Restrict`, `NoAction`, `SetNull`)")

	warnings := warningMessages(diags)
	require.Len(t, warnings, 1, "only the unindexed relation warns")
	assert.Contains(t, warnings[0], "With relationMode = \"prisma\", no foreign keys are used")
}

func TestReferentialIntegrityDeprecated(t *testing.T) {
	result, diags := build(t, `
datasource db {
  provider             = "postgresql"
  referentialIntegrity = "prisma"
}`)
	assert.False(t, diags.HasErrors())
	assert.Equal(t, core.RelationModePrisma, result.RelationMode())
	require.Len(t, diags.Warnings(), 1)
	assert.Contains(t, diags.Warnings()[0].Message(), "`referentialIntegrity` attribute is deprecated")
}

func TestSetNullOnRequiredWarns(t *testing.T) {
	_, diags := build(t, `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [id], onDelete: SetNull)
}
model B {
  id Int @id
}`)
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings(), 1)
	assert.Equal(t,
		"Warning validating field `b` in model `A`: The `onDelete` referential action of a relation should not be set to `SetNull` when a referenced field is required.",
		diags.Warnings()[0].Message())
}

func TestViewsAreNotNodes(t *testing.T) {
	result, diags := build(t, `
model User {
  id Int @id
}
view UserInfo {
  id     Int  @unique
  userId Int
  user   User @relation(fields: [userId], references: [id])
}`)
	assert.False(t, diags.HasErrors())
	require.Len(t, result.Graph.Models, 1)
	assert.Equal(t, "User", result.Graph.Models[0].Name)
}
