package pasci

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Interpreter is one session: it owns the environment programs assign into.
type Interpreter struct {
	env *Environment

	// Persist keeps variables between calls. When false every call starts from
	// an empty environment.
	Persist  bool
	MaxDepth int
}

func NewInterpreter() *Interpreter {
	return &Interpreter{
		env:      NewEnvironment(),
		Persist:  true,
		MaxDepth: DefaultMaxDepth,
	}
}

// Parse parses a whole program from src.
func Parse(src string) (Node, error) {
	return NewParser(NewLexerFromString(src)).ParseProgram()
}

// ParseExpr parses a single expression from src.
func ParseExpr(src string) (Node, error) {
	return NewParser(NewLexerFromString(src)).ParseExpression()
}

func (i *Interpreter) Env() *Environment {
	return i.env
}

func (i *Interpreter) Reset() {
	i.env.Reset()
}

// Parse parses a program with the session limits. When Persist is false it
// starts a new input and clears the environment first, even if parsing fails.
func (i *Interpreter) Parse(src string) (Node, error) {
	i.newInput()
	return i.parser(NewLexerFromString(src)).ParseProgram()
}

// ParseExpr parses an expression with the session limits, see Parse.
func (i *Interpreter) ParseExpr(src string) (Node, error) {
	i.newInput()
	return i.parser(NewLexerFromString(src)).ParseExpression()
}

// Run parses and executes a program. Assignments only become visible in the
// session environment when the whole program succeeds.
func (i *Interpreter) Run(src string) error {
	return i.RunReader("", strings.NewReader(src))
}

func (i *Interpreter) RunFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	return i.RunReader(filename, file)
}

func (i *Interpreter) RunReader(name string, reader io.Reader) error {
	i.newInput()

	tree, err := i.parser(NewLexer(name, reader)).ParseProgram()
	if err != nil {
		return err
	}

	return i.Exec(tree)
}

// Exec evaluates an already parsed program.
func (i *Interpreter) Exec(tree Node) error {
	i.newInput()

	scratch := i.env.Copy()
	if _, err := NewEvaluator(scratch).Eval(tree); err != nil {
		return err
	}

	i.env.Merge(scratch)
	return nil
}

// Calc parses and evaluates a single expression against the session environment.
func (i *Interpreter) Calc(src string) (Number, error) {
	tree, err := i.ParseExpr(src)
	if err != nil {
		return Number{}, err
	}

	return i.EvalExpr(tree)
}

// EvalExpr evaluates an already parsed expression.
func (i *Interpreter) EvalExpr(tree Node) (Number, error) {
	return NewEvaluator(i.env).Eval(tree)
}

func (i *Interpreter) newInput() {
	if !i.Persist {
		i.env.Reset()
	}
}

func (i *Interpreter) parser(tokenizer Tokenizer) *Parser {
	p := NewParser(tokenizer)
	p.MaxDepth = i.MaxDepth

	return p
}
