package schema

import (
	"testing"

	"github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
)

const blogSchema = `
datasource db {
  provider     = "postgresql"
  url          = env("DATABASE_URL")
  relationMode = "foreignKeys"
}

generator client {
  provider = "prisma-client-js"
}

/// A registered author.
model User {
  id       Int      @id @default(autoincrement())
  email    String   @unique @db.VarChar(255)
  posts    Post[]
  comments Comment[]
}

model Post {
  id       Int       @id @default(autoincrement())
  author   User      @relation(fields: [authorId], references: [id], onDelete: Cascade)
  authorId Int
  comments Comment[]

  @@index([authorId])
}

// Comments hang off both users and posts.
model Comment {
  id       Int   @id
  @@map("comments")
  post     Post  @relation("PostComments", fields: [postId], references: [id], onUpdate: NoAction)
  postId   Int
  author   User? @relation(fields: [authorId], references: [id], onDelete: SetNull)
  authorId Int?
}

/* legacy enum */
enum Role {
  USER
  ADMIN @map("admin")
}
`

func TestParseBasicModel(t *testing.T) {
	input := `
model User {
  id    Int    @id @default(autoincrement())
  email String @unique
  name  String?
  posts Post[]
}
`
	schema, err := ParseSchemaString("test.prisma", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	models := schema.Models()
	if len(models) != 1 {
		t.Fatalf("Expected 1 model, got %d", len(models))
	}

	model := models[0]
	if model.GetName() != "User" {
		t.Errorf("Expected model name 'User', got '%s'", model.GetName())
	}
	if len(model.Fields) != 4 {
		t.Fatalf("Expected 4 fields, got %d", len(model.Fields))
	}

	arities := map[string]ast.FieldArity{
		"id":    ast.FieldArityRequired,
		"email": ast.FieldArityRequired,
		"name":  ast.FieldArityOptional,
		"posts": ast.FieldArityList,
	}
	for name, want := range arities {
		field := model.Field(name)
		if field == nil {
			t.Fatalf("Expected field %q", name)
		}
		if field.Arity != want {
			t.Errorf("Field %q: expected arity %v, got %v", name, want, field.Arity)
		}
	}
}

func TestParseCompleteSchema(t *testing.T) {
	schema, err := ParseSchemaString("schema.prisma", blogSchema)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	if len(schema.Sources()) != 1 {
		t.Errorf("Expected 1 datasource, got %d", len(schema.Sources()))
	}
	if len(schema.Generators()) != 1 {
		t.Errorf("Expected 1 generator, got %d", len(schema.Generators()))
	}
	if len(schema.Models()) != 3 {
		t.Errorf("Expected 3 models, got %d", len(schema.Models()))
	}
	if len(schema.Enums()) != 1 {
		t.Errorf("Expected 1 enum, got %d", len(schema.Enums()))
	}
}

func TestParseDatasource(t *testing.T) {
	schema := MustParseSchemaString("schema.prisma", blogSchema)

	source := schema.Sources()[0]
	if source.GetName() != "db" {
		t.Errorf("Expected datasource name 'db', got '%s'", source.GetName())
	}
	if len(source.Properties) != 3 {
		t.Errorf("Expected 3 properties, got %d", len(source.Properties))
	}

	provider, ok := source.StringProperty("provider")
	if !ok || provider != "postgresql" {
		t.Errorf("Expected provider 'postgresql', got %q (ok=%v)", provider, ok)
	}
	mode, ok := source.StringProperty("relationMode")
	if !ok || mode != "foreignKeys" {
		t.Errorf("Expected relationMode 'foreignKeys', got %q (ok=%v)", mode, ok)
	}

	url := source.GetProperty("url")
	if url == nil {
		t.Fatal("Expected url property")
	}
	call, ok := url.Value.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("Expected url to be a function call, got %T", url.Value)
	}
	if call.Name != "env" || len(call.Arguments) != 1 {
		t.Errorf("Expected env(...) with one argument, got %s", call.String())
	}
	if _, ok := source.StringProperty("url"); ok {
		t.Error("Expected url not to be a string literal")
	}
}

func TestParseRelationAttribute(t *testing.T) {
	schema := MustParseSchemaString("schema.prisma", blogSchema)

	post := schema.Model("Post")
	if post == nil {
		t.Fatal("Expected model Post")
	}
	author := post.Field("author")
	if author == nil {
		t.Fatal("Expected field Post.author")
	}

	relation := author.Attribute("relation")
	if relation == nil {
		t.Fatal("Expected @relation on Post.author")
	}
	if len(relation.Arguments) != 3 {
		t.Fatalf("Expected 3 arguments, got %d", len(relation.Arguments))
	}

	fields, ok := ast.AsConstantList(relation.Argument("fields").Value)
	if !ok || len(fields) != 1 || fields[0] != "authorId" {
		t.Errorf("Expected fields [authorId], got %v", fields)
	}
	refs, ok := ast.AsConstantList(relation.Argument("references").Value)
	if !ok || len(refs) != 1 || refs[0] != "id" {
		t.Errorf("Expected references [id], got %v", refs)
	}
	action, ok := ast.AsConstant(relation.Argument("onDelete").Value)
	if !ok || action != "Cascade" {
		t.Errorf("Expected onDelete Cascade, got %q", action)
	}
	if relation.Argument("onUpdate") != nil {
		t.Error("Expected no onUpdate argument")
	}
	if relation.Argument("") != nil {
		t.Error("Expected no positional argument")
	}
}

func TestParseNamedRelation(t *testing.T) {
	schema := MustParseSchemaString("schema.prisma", blogSchema)

	relation := schema.Model("Comment").Field("post").Attribute("relation")
	if relation == nil {
		t.Fatal("Expected @relation on Comment.post")
	}

	name, ok := ast.AsString(relation.Argument("").Value)
	if !ok || name != "PostComments" {
		t.Errorf("Expected positional relation name 'PostComments', got %q", name)
	}
	onUpdate, _ := ast.AsConstant(relation.Argument("onUpdate").Value)
	if onUpdate != "NoAction" {
		t.Errorf("Expected onUpdate NoAction, got %q", onUpdate)
	}
}

func TestParseInterleavedBlockAttributes(t *testing.T) {
	schema := MustParseSchemaString("schema.prisma", blogSchema)

	comment := schema.Model("Comment")
	if len(comment.Fields) != 5 {
		t.Errorf("Expected 5 fields, got %d", len(comment.Fields))
	}
	if comment.BlockAttribute("map") == nil {
		t.Error("Expected @@map on Comment")
	}
	if comment.Field("authorId").Arity != ast.FieldArityOptional {
		t.Error("Expected Comment.authorId to be optional")
	}

	post := schema.Model("Post")
	index := post.BlockAttribute("index")
	if index == nil {
		t.Fatal("Expected @@index on Post")
	}
	cols, ok := ast.AsConstantList(index.Argument("").Value)
	if !ok || len(cols) != 1 || cols[0] != "authorId" {
		t.Errorf("Expected index columns [authorId], got %v", cols)
	}
}

func TestParseDottedAttribute(t *testing.T) {
	schema := MustParseSchemaString("schema.prisma", blogSchema)

	email := schema.Model("User").Field("email")
	attr := email.Attribute("db.VarChar")
	if attr == nil {
		t.Fatal("Expected @db.VarChar on User.email")
	}
	if got := attr.String(); got != "@db.VarChar(255)" {
		t.Errorf("Expected '@db.VarChar(255)', got %q", got)
	}
}

func TestParseEnum(t *testing.T) {
	schema := MustParseSchemaString("schema.prisma", blogSchema)

	enum := schema.Enums()[0]
	if enum.GetName() != "Role" {
		t.Errorf("Expected enum name 'Role', got '%s'", enum.GetName())
	}
	values := enum.Values()
	if len(values) != 2 {
		t.Fatalf("Expected 2 values, got %d", len(values))
	}
	if values[1].GetName() != "ADMIN" || len(values[1].Attributes) != 1 {
		t.Errorf("Expected ADMIN with one attribute, got %s", values[1].GetName())
	}
}

func TestParseView(t *testing.T) {
	input := `
view UserStats {
  userId     Int
  postCount  Int
}
`
	schema, err := ParseSchemaString("test.prisma", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	models := schema.Models()
	if len(models) != 1 {
		t.Fatalf("Expected 1 model/view, got %d", len(models))
	}
	if !models[0].IsView() {
		t.Error("Expected IsView() to be true")
	}
}

func TestParseUnsupportedType(t *testing.T) {
	input := `
model SensorData {
  time     DateTime @id
  metadata Unsupported("jsonb")?
}
`
	schema, err := ParseSchemaString("test.prisma", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	field := schema.Model("SensorData").Field("metadata")
	if field == nil {
		t.Fatal("Expected field metadata")
	}
	if !field.Type.IsUnsupported() {
		t.Errorf("Expected Unsupported type, got %s", field.Type.String())
	}
	if field.Arity != ast.FieldArityOptional {
		t.Errorf("Expected optional arity, got %v", field.Arity)
	}
}

func TestParseCompositeType(t *testing.T) {
	input := `
type Address {
  street String
  zip    String?
}
`
	schema := MustParseSchemaString("test.prisma", input)

	types := schema.CompositeTypes()
	if len(types) != 1 {
		t.Fatalf("Expected 1 composite type, got %d", len(types))
	}
	if types[0].Fields[1].Arity != ast.FieldArityOptional {
		t.Error("Expected zip to be optional")
	}
}

func TestParsePositions(t *testing.T) {
	input := "model A {\n  id Int @id\n  b  B  @relation(fields: [bId], references: [id])\n  bId Int\n}\n"
	schema := MustParseSchemaString("pos.prisma", input)

	field := schema.Model("A").Field("b")
	if field.Pos.Line != 3 || field.Pos.Column != 3 {
		t.Errorf("Expected field at 3:3, got %d:%d", field.Pos.Line, field.Pos.Column)
	}

	relation := field.Attribute("relation")
	span := relation.Span()
	if span.Start.Filename != "pos.prisma" {
		t.Errorf("Expected filename pos.prisma, got %q", span.Start.Filename)
	}
	if span.Start.Line != 3 {
		t.Errorf("Expected @relation on line 3, got %d", span.Start.Line)
	}
	if input[span.Start.Offset] != '@' {
		t.Errorf("Expected span to start at '@', got %q", input[span.Start.Offset])
	}
	if span.Len() <= len("@relation") {
		t.Errorf("Expected span to cover the arguments, got length %d", span.Len())
	}
}

func TestParseError(t *testing.T) {
	input := "model User {\n  id Int @id\n"
	_, err := ParseSchemaString("broken.prisma", input)
	if err == nil {
		t.Fatal("Expected parse error for unterminated model")
	}

	pos, ok := ErrorPosition(err)
	if !ok {
		t.Fatalf("Expected positioned parse error, got %T", err)
	}
	if pos.Filename != "broken.prisma" {
		t.Errorf("Expected filename broken.prisma, got %q", pos.Filename)
	}
	if ErrorMessage(err) == "" {
		t.Error("Expected non-empty error message")
	}
}
