package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Top is a union interface for all top-level schema declarations.
type Top interface {
	isTop()
	GetName() string
	TopPos() lexer.Position
}

func (m *Model) isTop()                 {}
func (m *Model) TopPos() lexer.Position { return m.Pos }

func (e *Enum) isTop()                 {}
func (e *Enum) TopPos() lexer.Position { return e.Pos }

func (c *CompositeType) isTop()                 {}
func (c *CompositeType) TopPos() lexer.Position { return c.Pos }

func (s *SourceConfig) isTop()                 {}
func (s *SourceConfig) TopPos() lexer.Position { return s.Pos }

func (g *GeneratorConfig) isTop()                 {}
func (g *GeneratorConfig) TopPos() lexer.Position { return g.Pos }

// SchemaAst represents the complete parsed Prisma schema.
type SchemaAst struct {
	Tops []Top
}

// NewSchemaAst assembles a schema from parsed top-level items and derives the
// per-field arity and the field/attribute split of every model.
func NewSchemaAst(tops []Top) *SchemaAst {
	for _, top := range tops {
		switch t := top.(type) {
		case *Model:
			t.splitMembers()
		case *CompositeType:
			for _, f := range t.Fields {
				f.resolveArity()
			}
		}
	}
	return &SchemaAst{Tops: tops}
}

// Sources returns all datasource blocks.
func (s *SchemaAst) Sources() []*SourceConfig {
	var result []*SourceConfig
	for _, top := range s.Tops {
		if src, ok := top.(*SourceConfig); ok {
			result = append(result, src)
		}
	}
	return result
}

// Generators returns all generator blocks.
func (s *SchemaAst) Generators() []*GeneratorConfig {
	var result []*GeneratorConfig
	for _, top := range s.Tops {
		if gen, ok := top.(*GeneratorConfig); ok {
			result = append(result, gen)
		}
	}
	return result
}

// Models returns all model and view declarations.
func (s *SchemaAst) Models() []*Model {
	var result []*Model
	for _, top := range s.Tops {
		if model, ok := top.(*Model); ok {
			result = append(result, model)
		}
	}
	return result
}

// Model returns the model or view with the given name.
func (s *SchemaAst) Model(name string) *Model {
	for _, m := range s.Models() {
		if m.GetName() == name {
			return m
		}
	}
	return nil
}

// Enums returns all enum declarations.
func (s *SchemaAst) Enums() []*Enum {
	var result []*Enum
	for _, top := range s.Tops {
		if enum, ok := top.(*Enum); ok {
			result = append(result, enum)
		}
	}
	return result
}

// CompositeTypes returns all composite type declarations.
func (s *SchemaAst) CompositeTypes() []*CompositeType {
	var result []*CompositeType
	for _, top := range s.Tops {
		if ct, ok := top.(*CompositeType); ok {
			result = append(result, ct)
		}
	}
	return result
}
