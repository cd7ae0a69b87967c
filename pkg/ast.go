package pasci

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Node is one of the AST variants below. The set is closed: only types in this
// file implement it.
type Node interface {
	Position() lexer.Position
	String() string
	node()
}

type NumberLit struct {
	Pos   lexer.Position
	Value Number
}

type Variable struct {
	Pos  lexer.Position
	Name string
}

type UnaryOp string

const (
	UnaryPlus     UnaryOp = "+"
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Pos       lexer.Position
	Operation UnaryOp
	Operand   Node
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

type BinaryExpr struct {
	Pos       lexer.Position
	Operation BinaryOp
	Op1       Node
	Op2       Node
}

type Assignment struct {
	Pos    lexer.Position
	Target *Variable
	Value  Node
}

// Block is a BEGIN ... END statement list. Empty statements appear as NoOp.
type Block struct {
	Pos        lexer.Position
	Statements []Node
}

type NoOp struct {
	Pos lexer.Position
}

func (n *NumberLit) node()  {}
func (n *Variable) node()   {}
func (n *UnaryExpr) node()  {}
func (n *BinaryExpr) node() {}
func (n *Assignment) node() {}
func (n *Block) node()      {}
func (n *NoOp) node()       {}

func (n *NumberLit) Position() lexer.Position  { return n.Pos }
func (n *Variable) Position() lexer.Position   { return n.Pos }
func (n *UnaryExpr) Position() lexer.Position  { return n.Pos }
func (n *BinaryExpr) Position() lexer.Position { return n.Pos }
func (n *Assignment) Position() lexer.Position { return n.Pos }
func (n *Block) Position() lexer.Position      { return n.Pos }
func (n *NoOp) Position() lexer.Position       { return n.Pos }

func (n *NumberLit) String() string {
	return n.Value.String()
}

func (n *Variable) String() string {
	return n.Name
}

func (n *UnaryExpr) String() string {
	return "(" + string(n.Operation) + " " + n.Operand.String() + ")"
}

func (n *BinaryExpr) String() string {
	return "(" + string(n.Operation) + " " + n.Op1.String() + " " + n.Op2.String() + ")"
}

func (n *Assignment) String() string {
	return "(:= " + n.Target.String() + " " + n.Value.String() + ")"
}

func (n *Block) String() string {
	var str strings.Builder
	str.WriteString("(block")

	for _, stmt := range n.Statements {
		str.WriteString(" ")
		str.WriteString(stmt.String())
	}
	str.WriteString(")")

	return str.String()
}

func (n *NoOp) String() string {
	return "noop"
}
