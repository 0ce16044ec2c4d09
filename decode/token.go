package decode

import (
	"fmt"
)

// Statement keywords start a line of a description.
const (
	kwSet     = "set"
	kwLoad    = "load"
	kwDeclare = "declare"
	kwInclude = "include"
	kwRender  = "render"
)

// Clause keywords only appear inside a statement.
const (
	kwUsing = "using"
	kwLimit = "limit"
	kwWith  = "with"
	kwTo    = "to"
	kwAs    = "as"
)

func isStatement(str string) bool {
	switch str {
	case kwSet, kwLoad, kwDeclare, kwInclude, kwRender:
		return true
	default:
		return false
	}
}

func isKeyword(str string) bool {
	switch str {
	case kwUsing, kwLimit, kwWith, kwTo, kwAs:
		return true
	default:
		return isStatement(str)
	}
}

const (
	Invalid rune = -(iota + 1)
	Keyword
	Literal
	Variable
	Command
	Comment
	Comma
	Lparen
	Rparen
	Sum
	Range
	RangeSum
	EOL
	EOF
)

var tokenNames = map[rune]string{
	Comma:    "<comma>",
	Lparen:   "<lparen>",
	Rparen:   "<rparen>",
	Sum:      "<sum>",
	Range:    "<range>",
	RangeSum: "<range-sum>",
	EOL:      "<eol>",
	EOF:      "<eof>",
}

var tokenPrefixes = map[rune]string{
	Invalid:  "invalid",
	Keyword:  "keyword",
	Literal:  "literal",
	Variable: "variable",
	Command:  "command",
	Comment:  "comment",
}

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Literal string
	Type    rune
	Position
}

// Is reports whether the token is the given keyword.
func (t Token) Is(kw string) bool {
	return t.Type == Keyword && t.Literal == kw
}

// Statement reports whether the token starts a statement.
func (t Token) Statement() bool {
	return t.Type == Keyword && isStatement(t.Literal)
}

// EndOfLine reports whether nothing more is expected on the line: a trailing
// comment ends a line like a newline does.
func (t Token) EndOfLine() bool {
	return t.Type == EOL || t.Type == Comment
}

// Value reports whether the token gives one or more values.
func (t Token) Value() bool {
	return t.Type == Literal || t.Type == Variable || t.Type == Command
}

func (t Token) String() string {
	if str, ok := tokenNames[t.Type]; ok {
		return str
	}
	prefix, ok := tokenPrefixes[t.Type]
	if !ok {
		prefix = "unknown"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
