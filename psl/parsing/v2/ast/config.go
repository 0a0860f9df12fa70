package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ConfigBlockProperty represents a key-value property in a config block.
type ConfigBlockProperty struct {
	Pos   lexer.Position
	Name  *Identifier `@@`
	Value Expression  `"=" @@`
}

// GetName returns the property name.
func (p *ConfigBlockProperty) GetName() string {
	if p.Name == nil {
		return ""
	}
	return p.Name.Name
}

// SourceConfig represents a datasource block.
type SourceConfig struct {
	Pos        lexer.Position
	Keyword    string                 `@"datasource"`
	Name       *Identifier            `@@`
	Properties []*ConfigBlockProperty `"{" @@* "}"`
}

// GetName returns the datasource name.
func (s *SourceConfig) GetName() string {
	if s.Name == nil {
		return ""
	}
	return s.Name.Name
}

// GetProperty finds a property by name.
func (s *SourceConfig) GetProperty(name string) *ConfigBlockProperty {
	return findProperty(s.Properties, name)
}

// StringProperty returns the string literal value of a property.
func (s *SourceConfig) StringProperty(name string) (string, bool) {
	prop := s.GetProperty(name)
	if prop == nil {
		return "", false
	}
	return AsString(prop.Value)
}

// GeneratorConfig represents a generator block.
type GeneratorConfig struct {
	Pos        lexer.Position
	Keyword    string                 `@"generator"`
	Name       *Identifier            `@@`
	Properties []*ConfigBlockProperty `"{" @@* "}"`
}

// GetName returns the generator name.
func (g *GeneratorConfig) GetName() string {
	if g.Name == nil {
		return ""
	}
	return g.Name.Name
}

// GetProperty finds a property by name.
func (g *GeneratorConfig) GetProperty(name string) *ConfigBlockProperty {
	return findProperty(g.Properties, name)
}

func findProperty(props []*ConfigBlockProperty, name string) *ConfigBlockProperty {
	for _, prop := range props {
		if prop.GetName() == name {
			return prop
		}
	}
	return nil
}
