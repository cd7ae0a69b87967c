package pasci

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DefaultMaxDepth bounds how deeply blocks, parentheses and unary operators may nest.
const DefaultMaxDepth = 512

var binaryOps = map[TokenType]BinaryOp{
	TokenPlus:     BinaryAddition,
	TokenMinus:    BinarySubtraction,
	TokenMultiply: BinaryMultiplication,
	TokenDivide:   BinaryDivision,
}

var unaryOps = map[TokenType]UnaryOp{
	TokenPlus:  UnaryPlus,
	TokenMinus: UnaryNegative,
}

// Parser is an LL(1) recursive descent parser. It pulls one token at a time from
// its Tokenizer and never backtracks.
type Parser struct {
	tokenizer Tokenizer
	cur       Token
	started   bool

	// MaxDepth limits nesting. Zero or less means DefaultMaxDepth.
	MaxDepth int
	depth    int
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		MaxDepth:  DefaultMaxDepth,
	}
}

// ParseProgram parses `compound_statement "."` followed by the end of input.
func (p *Parser) ParseProgram() (Node, error) {
	if err := p.start(); err != nil {
		return nil, err
	}

	node, err := p.compoundStatement()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenDot); err != nil {
		return nil, err
	}

	if err := p.eat(TokenEOF); err != nil {
		return nil, err
	}

	return node, nil
}

// ParseExpression parses a single expression followed by the end of input.
func (p *Parser) ParseExpression() (Node, error) {
	if err := p.start(); err != nil {
		return nil, err
	}

	node, err := p.expr()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenEOF); err != nil {
		return nil, err
	}

	return node, nil
}

func (p *Parser) start() error {
	if p.started {
		return nil
	}

	p.started = true
	return p.advance()
}

func (p *Parser) advance() error {
	tok, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}

	p.cur = tok
	return nil
}

// eat consumes the current token if it has the expected type.
func (p *Parser) eat(typ TokenType) error {
	if p.cur.Typ != typ {
		return p.errorf(typ)
	}

	return p.advance()
}

func (p *Parser) check(typ TokenType) bool {
	return p.cur.Typ == typ
}

func (p *Parser) errorf(expected ...TokenType) error {
	return &SyntaxError{
		Pos:      p.cur.Pos,
		Found:    p.cur,
		Expected: expected,
	}
}

func (p *Parser) enter(pos lexer.Position) error {
	limit := p.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}

	p.depth++
	if p.depth > limit {
		return &DepthError{Pos: pos, Limit: limit}
	}

	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) compoundStatement() (Node, error) {
	pos := p.cur.Pos
	if err := p.enter(pos); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.eat(TokenBegin); err != nil {
		return nil, err
	}

	stmts, err := p.statementList()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenEnd); err != nil {
		return nil, err
	}

	return &Block{
		Pos:        pos,
		Statements: stmts,
	}, nil
}

func (p *Parser) statementList() ([]Node, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	stmts := []Node{stmt}
	for p.check(TokenSemicolon) {
		if err := p.advance(); err != nil {
			return nil, err
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	// An identifier right after a statement means a separator is missing
	if p.check(TokenIdentifier) {
		return nil, p.errorf(TokenSemicolon, TokenEnd)
	}

	return stmts, nil
}

func (p *Parser) statement() (Node, error) {
	switch p.cur.Typ {
	case TokenBegin:
		return p.compoundStatement()
	case TokenIdentifier:
		return p.assignment()
	default:
		return &NoOp{Pos: p.cur.Pos}, nil
	}
}

func (p *Parser) assignment() (Node, error) {
	target, err := p.variable()
	if err != nil {
		return nil, err
	}

	pos := p.cur.Pos
	if err := p.eat(TokenAssign); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &Assignment{
		Pos:    pos,
		Target: target,
		Value:  value,
	}, nil
}

func (p *Parser) expr() (Node, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	// Chained operands (for example 1 - 3 + 1) fold to the left
	for p.check(TokenPlus) || p.check(TokenMinus) {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Pos:       tok.Pos,
			Operation: binaryOps[tok.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) term() (Node, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.check(TokenMultiply) || p.check(TokenDivide) {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Pos:       tok.Pos,
			Operation: binaryOps[tok.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) factor() (Node, error) {
	switch tok := p.cur; tok.Typ {
	case TokenPlus, TokenMinus:
		return p.unaryExpr()
	case TokenInteger:
		return p.literal()
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	default:
		v, err := p.variable()
		if err != nil {
			return nil, err
		}

		return v, nil
	}
}

func (p *Parser) unaryExpr() (Node, error) {
	tok := p.cur
	if err := p.enter(tok.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.advance(); err != nil {
		return nil, err
	}

	operand, err := p.factor()
	if err != nil {
		return nil, err
	}

	return &UnaryExpr{
		Pos:       tok.Pos,
		Operation: unaryOps[tok.Typ],
		Operand:   operand,
	}, nil
}

func (p *Parser) parenthesisedExpression() (Node, error) {
	if err := p.enter(p.cur.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.eat(TokenOpenParentheses); err != nil {
		return nil, err
	}

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) literal() (Node, error) {
	tok := p.cur
	value, ok := ParseInteger(tok.Value)
	if !ok {
		return nil, p.errorf(TokenInteger)
	}

	if err := p.eat(TokenInteger); err != nil {
		return nil, err
	}

	return &NumberLit{
		Pos:   tok.Pos,
		Value: value,
	}, nil
}

func (p *Parser) variable() (*Variable, error) {
	tok := p.cur
	if err := p.eat(TokenIdentifier); err != nil {
		return nil, err
	}

	return &Variable{
		Pos:  tok.Pos,
		Name: tok.Value,
	}, nil
}
