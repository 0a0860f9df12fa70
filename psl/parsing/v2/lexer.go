package schema

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PrismaLexer defines the token types for Prisma Schema Language.
var PrismaLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments come first so that `//` is never read as punctuation.
	{Name: "DocComment", Pattern: `///[^\n]*`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "MultiLineComment", Pattern: `/\*(?:[^*]|\*[^/])*\*/`},

	{Name: "Keyword", Pattern: `\b(model|enum|type|view|datasource|generator|Unsupported)\b`},

	// Block attribute prefix (must come before single @)
	{Name: "BlockAttr", Pattern: `@@`},
	{Name: "FieldAttr", Pattern: `@`},

	{Name: "Punct", Pattern: `[{}()\[\]:,.=?!]`},

	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?\b`},

	// Identifiers (Unicode alphanumeric with _ and -)
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_-]*`},

	{Name: "Newline", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
