package pasci

import (
	"fmt"
)

// DefaultEvalDepth bounds recursion of the evaluator. Left-folded operator chains
// (1 + 2 + 3 ...) are walked iteratively and do not count against it.
const DefaultEvalDepth = 1 << 16

// Evaluator walks an AST, reading and writing its Environment. Expressions
// produce a Number, statements produce the zero Number.
type Evaluator struct {
	env *Environment

	// MaxDepth limits recursion into the tree. Zero or less means DefaultEvalDepth.
	MaxDepth int
	depth    int
}

func NewEvaluator(env *Environment) *Evaluator {
	return &Evaluator{
		env:      env,
		MaxDepth: DefaultEvalDepth,
	}
}

// Evaluate runs node against env with the default limits.
func Evaluate(node Node, env *Environment) (Number, error) {
	return NewEvaluator(env).Eval(node)
}

func (e *Evaluator) Env() *Environment {
	return e.env
}

func (e *Evaluator) Eval(node Node) (Number, error) {
	limit := e.MaxDepth
	if limit <= 0 {
		limit = DefaultEvalDepth
	}

	if e.depth >= limit {
		return Number{}, &DepthError{Pos: node.Position(), Limit: limit}
	}

	e.depth++
	defer func() { e.depth-- }()

	switch n := node.(type) {
	case *NumberLit:
		return n.Value, nil
	case *Variable:
		return e.variable(n)
	case *UnaryExpr:
		return e.unaryExpression(n)
	case *BinaryExpr:
		return e.binaryExpression(n)
	case *Assignment:
		return Number{}, e.assignment(n)
	case *Block:
		return Number{}, e.block(n)
	case *NoOp:
		return Number{}, nil
	default:
		panic(fmt.Sprintf("unexpected node %T", node))
	}
}

func (e *Evaluator) variable(v *Variable) (Number, error) {
	val, ok := e.env.Get(v.Name)
	if !ok {
		return Number{}, &NameError{
			Pos:  v.Pos,
			Name: v.Name,
		}
	}

	return val, nil
}

func (e *Evaluator) unaryExpression(expr *UnaryExpr) (Number, error) {
	v, err := e.Eval(expr.Operand)
	if err != nil {
		return Number{}, err
	}

	switch expr.Operation {
	case UnaryPlus:
		return v, nil
	case UnaryNegative:
		return v.Neg(), nil
	default:
		panic("unexpected unary op: " + expr.Operation)
	}
}

func (e *Evaluator) binaryExpression(expr *BinaryExpr) (Number, error) {
	// Collect the left spine so 1 - 2 + 3 ... evaluates without recursing per operator
	spine := []*BinaryExpr{expr}
	for {
		lhs, ok := spine[len(spine)-1].Op1.(*BinaryExpr)
		if !ok {
			break
		}

		spine = append(spine, lhs)
	}

	acc, err := e.Eval(spine[len(spine)-1].Op1)
	if err != nil {
		return Number{}, err
	}

	for k := len(spine) - 1; k >= 0; k-- {
		op := spine[k]

		rhs, err := e.Eval(op.Op2)
		if err != nil {
			return Number{}, err
		}

		acc, err = e.apply(op, acc, rhs)
		if err != nil {
			return Number{}, err
		}
	}

	return acc, nil
}

func (e *Evaluator) apply(expr *BinaryExpr, v1, v2 Number) (Number, error) {
	var v Number
	switch expr.Operation {
	case BinaryAddition:
		v = v1.Add(v2)
	case BinarySubtraction:
		v = v1.Sub(v2)
	case BinaryMultiplication:
		v = v1.Mul(v2)
	case BinaryDivision:
		if v2.IsZero() {
			return Number{}, &DivisionError{Pos: expr.Pos}
		}

		v = v1.Quo(v2)
	default:
		panic("unexpected binary op: " + expr.Operation)
	}

	if !v.IsFinite() {
		return Number{}, &OverflowError{Pos: expr.Pos}
	}

	return v, nil
}

func (e *Evaluator) assignment(a *Assignment) error {
	v, err := e.Eval(a.Value)
	if err != nil {
		return err
	}

	e.env.Set(a.Target.Name, v)
	return nil
}

func (e *Evaluator) block(b *Block) error {
	for _, stmt := range b.Statements {
		if _, err := e.Eval(stmt); err != nil {
			return err
		}
	}

	return nil
}
