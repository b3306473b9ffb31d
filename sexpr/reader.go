package sexpr

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hummuswins/Crux-Compiler/token"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeNumber
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeNumber:
		return "number"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("unknown node %d", int(t))
	}
}

// Node is a datum read from an s-expression document.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeNumber
	Items []*Node // NodeList
	Pos   token.Position
}

func (n *Node) String() string {
	switch n.Type {
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", escaped)
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, " "))
	default:
		return n.Text
	}
}

// Head returns the leading symbol of a list, or an empty string.
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

// Args returns the items of a list following its head.
func (n *Node) Args() []*Node {
	if n.Type != NodeList || len(n.Items) == 0 {
		return nil
	}
	return n.Items[1:]
}

// Parse parses the entire input and returns the top-level datum.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if p.lexer.err != nil {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, p.lexer.err
	}
	if err != nil {
		return nil, err
	}
	if p.current.typ != tokenEOF {
		return nil, fmt.Errorf("%s: expected EOF but got %s", p.current.pos, p.current.typ)
	}

	return result, nil
}

type parser struct {
	lexer   *lexer
	current lexeme
}

func (p *parser) nextToken() {
	p.current = p.lexer.next()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.current
	switch tok.typ {
	case tokenSymbol:
		p.nextToken()
		return &Node{Type: NodeSymbol, Text: tok.value, Pos: tok.pos}, nil
	case tokenString:
		p.nextToken()
		return &Node{Type: NodeString, Text: tok.value, Pos: tok.pos}, nil
	case tokenNumber:
		p.nextToken()
		return &Node{Type: NodeNumber, Text: tok.value, Pos: tok.pos}, nil
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("%s: unexpected token: %s", tok.pos, tok.typ)
	}
}

func (p *parser) parseList() (*Node, error) {
	list := &Node{Type: NodeList, Pos: p.current.pos}
	p.nextToken() // consume '('

	for p.current.typ != tokenRParen && p.current.typ != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}

	if p.current.typ != tokenRParen {
		return nil, fmt.Errorf("%s: expected ')' but got %s", p.current.pos, p.current.typ)
	}
	p.nextToken() // consume ')'

	return list, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenNumber
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type lexeme struct {
	typ   tokenType
	value string
	pos   token.Position
}

type lexer struct {
	input    []rune
	offset   int
	row, col int
	err      error
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input), row: 1, col: 1}
}

func (l *lexer) peek(n int) rune {
	if l.offset+n >= len(l.input) {
		return 0
	}
	return l.input[l.offset+n]
}

func (l *lexer) advance() rune {
	r := l.peek(0)
	l.offset++
	if r == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) fail(pos token.Position, format string, args ...any) lexeme {
	if l.err == nil {
		l.err = fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
	}
	return lexeme{typ: tokenEOF, pos: pos}
}

func (l *lexer) next() lexeme {
	for {
		for unicode.IsSpace(l.peek(0)) {
			l.advance()
		}
		if l.peek(0) != ';' {
			break
		}
		for r := l.peek(0); r != '\n' && r != 0; r = l.peek(0) {
			l.advance()
		}
	}

	pos := token.Position{Row: l.row, Col: l.col}
	r := l.peek(0)

	switch {
	case r == 0:
		return lexeme{typ: tokenEOF, pos: pos}
	case r == '(':
		l.advance()
		return lexeme{typ: tokenLParen, value: "(", pos: pos}
	case r == ')':
		l.advance()
		return lexeme{typ: tokenRParen, value: ")", pos: pos}
	case r == '"':
		return l.readString(pos)
	case unicode.IsDigit(r), (r == '-' || r == '+') && unicode.IsDigit(l.peek(1)):
		return lexeme{typ: tokenNumber, value: l.readWhile(isNumberChar), pos: pos}
	case isSymbolChar(r):
		return lexeme{typ: tokenSymbol, value: l.readWhile(isSymbolChar), pos: pos}
	default:
		return l.fail(pos, "unexpected character '%c'", r)
	}
}

func (l *lexer) readWhile(accept func(rune) bool) string {
	start := l.offset
	l.advance()
	for accept(l.peek(0)) {
		l.advance()
	}
	return string(l.input[start:l.offset])
}

func (l *lexer) readString(pos token.Position) lexeme {
	sb := strings.Builder{}
	l.advance() // skip opening quote

	for r := l.peek(0); r != '"'; r = l.peek(0) {
		switch r {
		case 0:
			return l.fail(pos, "unterminated string")
		case '\\':
			l.advance()
			switch esc := l.advance(); esc {
			case '"', '\\':
				sb.WriteRune(esc)
			case 'n':
				sb.WriteRune('\n')
			default:
				return l.fail(pos, "invalid escape sequence: \\%c", esc)
			}
		default:
			sb.WriteRune(l.advance())
		}
	}
	l.advance() // skip closing quote

	return lexeme{typ: tokenString, value: sb.String(), pos: pos}
}

func isNumberChar(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == 'e' || r == 'E' || r == '-' || r == '+'
}

func isSymbolChar(r rune) bool {
	if r == 0 || unicode.IsSpace(r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.+-*/<>=!", r)
}
