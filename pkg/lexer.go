package pasci

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenInteger
	TokenIdentifier

	TokenBegin
	TokenEnd

	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenOpenParentheses
	TokenCloseParentheses
	TokenAssign
	TokenSemicolon
	TokenDot
)

var tokenNames = map[TokenType]string{
	TokenEOF:              "EOF",
	TokenInteger:          "INTEGER",
	TokenIdentifier:       "ID",
	TokenBegin:            "BEGIN",
	TokenEnd:              "END",
	TokenPlus:             "PLUS",
	TokenMinus:            "MINUS",
	TokenMultiply:         "MUL",
	TokenDivide:           "DIV",
	TokenOpenParentheses:  "LPAREN",
	TokenCloseParentheses: "RPAREN",
	TokenAssign:           "ASSIGN",
	TokenSemicolon:        "SEMI",
	TokenDot:              "DOT",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "TokenType(?)"
}

// Reserved words are matched on the exact spelling, BEGIN and begin are not the same word.
var keywordTable = map[string]TokenType{
	"BEGIN": TokenBegin,
	"END":   TokenEnd,
}

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMultiply,
	"/":  TokenDivide,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	";":  TokenSemicolon,
	".":  TokenDot,
	":=": TokenAssign,
}

type Token struct {
	Typ   TokenType
	Value string
	Pos   lexer.Position
}

func (t Token) String() string {
	if t.Typ == TokenEOF {
		return "EOF"
	}

	return t.Typ.String() + "(" + t.Value + ")"
}

// Tokenizer is the pull-based token source consumed by the Parser.
type Tokenizer interface {
	NextToken() (Token, error)
}

// Lexer turns source text into tokens on demand. Each call to NextToken runs
// the state functions until exactly one token (or an error) is produced.
type Lexer struct {
	reader *bufio.Reader
	pos    lexer.Position
	start  lexer.Position

	pending *Token
	err     error
}

func NewLexer(filename string, reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		pos: lexer.Position{
			Filename: filename,
			Line:     1,
			Column:   1,
		},
	}
}

func NewLexerFromString(src string) *Lexer {
	return NewLexer("", strings.NewReader(src))
}

// NextToken returns the next token of the input. Once the input is exhausted it
// keeps returning the EOF token; once a LexError happened it keeps returning it.
func (l *Lexer) NextToken() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	for state := defaultState; l.pending == nil && l.err == nil; {
		state = state(l)
	}

	if l.err != nil {
		return Token{}, l.err
	}

	tok := *l.pending
	if tok.Typ != TokenEOF {
		l.pending = nil
	}

	return tok, nil
}

// All drains the lexer, returning every token before EOF.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		t, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		if t.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.pos

		switch r := l.peek(); {
		case r == EOF:
			return l.emmitValue(TokenEOF, "")
		case unicode.IsSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emmitValue(TokenInteger, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isAlphanumeric(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == ':' && l.peek() == '=' {
		l.next() // Skip the '='
		return l.emmitValue(TokenAssign, ":=")
	}

	if tok, ok := operatorTable[string(r)]; ok && tok != TokenAssign {
		return l.emmitValue(tok, string(r))
	}

	return l.errorf(r)
}

func isAlphanumeric(r rune) bool {
	return r != EOF && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func (l *Lexer) errorf(r rune) stateFunc {
	l.err = &LexError{
		Pos:  l.start,
		Char: r,
	}

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.pending = &Token{
		Typ:   t,
		Value: val,
		Pos:   l.start,
	}

	return nil
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	l.pos.Offset += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	return r
}
