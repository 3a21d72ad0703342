// Package filter parses the condition flags of the CLI, such as
// `age >= 18`, `status IN ('a', 'b')` or `deleted_at IS NULL`, into
// condition nodes.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/atlas/query/ast"
)

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:IS|NOT|NULL|IN|LIKE|TRUE|FALSE)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "String", Pattern: `'(?:''|[^'])*'`},
	{Name: "Operator", Pattern: `<>|!=|<=|>=|=|<|>`},
	{Name: "Punct", Pattern: `[(),.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type filter struct {
	Column  string      `@Ident ( @"." @Ident )*`
	Null    *nullCheck  `( @@`
	In      *inList     `| @@`
	Compare *comparison `| @@ )`
}

type nullCheck struct {
	Not bool `"IS" @"NOT"? "NULL"`
}

type inList struct {
	Not    bool     `@"NOT"? "IN"`
	Values []*value `"(" ( @@ ( "," @@ )* )? ")"`
}

type comparison struct {
	Operator string `@( Operator | "LIKE" )`
	Value    *value `@@`
}

type value struct {
	String *string `  @String`
	Number *string `| @Number`
	Bool   *string `| @( "TRUE" | "FALSE" )`
	Null   bool    `| @"NULL"`
	Ident  *string `| @Ident`
}

var parser = participle.MustBuild[filter](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)

var valueParser = participle.MustBuild[value](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
)

// Parse parses a single filter expression
func Parse(expr string) (ast.Condition, error) {
	f, err := parser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return f.condition()
}

// ParseAll parses each expression, in order
func ParseAll(exprs []string) ([]ast.Condition, error) {
	conditions := make([]ast.Condition, 0, len(exprs))
	for _, expr := range exprs {
		c, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

// ParseValue parses a single literal: a quoted string, a number, TRUE,
// FALSE, NULL or a bare word.
func ParseValue(literal string) (any, error) {
	v, err := valueParser.ParseString("", literal)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", literal, err)
	}
	return v.parse()
}

// ParseAssignment parses `column=value` as used by --set flags
func ParseAssignment(assignment string) (string, any, error) {
	column, literal, ok := strings.Cut(assignment, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" {
		return "", nil, fmt.Errorf("invalid assignment %q: expected column=value", assignment)
	}
	v, err := ParseValue(literal)
	if err != nil {
		return "", nil, err
	}
	return column, v, nil
}

func (f *filter) condition() (ast.Condition, error) {
	switch {
	case f.Null != nil:
		if f.Null.Not {
			return ast.Op(f.Column, "!=", nil), nil
		}
		return ast.Eq(f.Column, nil), nil

	case f.In != nil:
		values := make([]any, len(f.In.Values))
		for i, v := range f.In.Values {
			parsed, err := v.parse()
			if err != nil {
				return nil, err
			}
			values[i] = parsed
		}
		if f.In.Not {
			return ast.NotInList(f.Column, values...), nil
		}
		return ast.InList(f.Column, values...), nil

	case f.Compare != nil:
		v, err := f.Compare.Value.parse()
		if err != nil {
			return nil, err
		}
		return ast.Op(f.Column, strings.ToUpper(f.Compare.Operator), v), nil
	}
	return nil, fmt.Errorf("invalid filter on %q", f.Column)
}

// parse converts the literal to the value bound to the placeholder.
// Integers stay integers, bare identifiers are taken as strings.
func (v *value) parse() (any, error) {
	switch {
	case v.String != nil:
		s := *v.String
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), nil
	case v.Number != nil:
		if i, err := strconv.ParseInt(*v.Number, 10, 64); err == nil {
			return i, nil
		}
		return strconv.ParseFloat(*v.Number, 64)
	case v.Bool != nil:
		return strings.EqualFold(*v.Bool, "true"), nil
	case v.Null:
		return nil, nil
	case v.Ident != nil:
		return *v.Ident, nil
	}
	return nil, nil
}
