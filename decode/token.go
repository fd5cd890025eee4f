package decode

import (
	"fmt"
)

const (
	kwSet     = "set"
	kwLoad    = "load"
	kwUsing   = "using"
	kwRender  = "render"
	kwWith    = "with"
	kwLimit   = "limit"
	kwInclude = "include"
	kwDeclare = "declare"
	kwTo      = "to"
	kwAs      = "as"
)

func isKeyword(str string) bool {
	switch str {
	default:
		return false
	case kwSet:
	case kwLoad:
	case kwUsing:
	case kwRender:
	case kwWith:
	case kwLimit:
	case kwInclude:
	case kwDeclare:
	case kwAs:
	case kwTo:
	}
	return true
}

const (
	Invalid rune = -(iota + 1)
	Keyword
	Literal
	Variable
	Command
	Data
	Comma
	Lparen
	Rparen
	EOL
	EOF
)

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

func (t Token) String() string {
	var prefix string
	switch t.Type {
	default:
		prefix = "unknown"
	case Invalid:
		prefix = "invalid"
	case Literal:
		prefix = "literal"
	case Keyword:
		prefix = "keyword"
	case Variable:
		prefix = "variable"
	case Command:
		prefix = "command"
	case Data:
		prefix = "data"
	case Comma:
		return "<comma>"
	case EOL:
		return "<eol>"
	case EOF:
		return "<eof>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
