package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node of a paragraph description file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Sections []*Section     `parser:"Newline* ( @@ Newline* )*"`
}

// Section is either the page settings or one paragraph.
type Section struct {
	Page      *PageSection      `parser:"  @@"`
	Paragraph *ParagraphSection `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Page != nil:
		return "page"
	case s.Paragraph != nil:
		return "paragraph"
	default:
		return "unknown"
	}
}

// PageSection holds page level assignments (width, margin, meta).
type PageSection struct {
	Block *Block `parser:"'page' @@"`
}

// ParagraphSection describes one paragraph: options plus ordered text runs.
type ParagraphSection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'paragraph' @Ident?"`
	Block *Block         `parser:"@@"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | ',' | Newline )* )* '}'"`
}

// Statement inside a block: a text run or an assignment.
type Statement struct {
	Run        *Run        `parser:"  @@"`
	Assignment *Assignment `parser:"| @@"`
}

// Run is a styled text run, eg: text size 18pt "Hello".
type Run struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Size *string        `parser:"'text' ( 'size' @Number )?"`
	Text StringLiteral  `parser:"@String"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"Newline* @@"`
}

// Value represents a scalar property value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Raw returns the value as written (strings unquoted).
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Bool 解析 true/false/yes/no/on/off 形式的布尔值。
func (v *Value) Bool() (bool, error) {
	switch v.Raw() {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("非法布尔值 %q", v.Raw())
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// Paragraphs returns the paragraph sections in document order.
func (d *Document) Paragraphs() []*ParagraphSection {
	var out []*ParagraphSection
	for _, s := range d.Sections {
		if s.Paragraph != nil {
			out = append(out, s.Paragraph)
		}
	}
	return out
}

// Page returns the first page section, or nil.
func (d *Document) Page() *PageSection {
	for _, s := range d.Sections {
		if s.Page != nil {
			return s.Page
		}
	}
	return nil
}
