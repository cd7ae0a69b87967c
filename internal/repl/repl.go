// Package repl implements the interactive read-eval-print loop around pasci.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"go.pasci.dev/internal/config"
	"go.pasci.dev/pkg"
)

type REPL struct {
	cfg    *config.Config
	interp *pasci.Interpreter
	out    io.Writer

	// PrintAST and PrintTokens echo the intermediate forms of every line.
	PrintAST    bool
	PrintTokens bool

	errColor  *color.Color
	infoColor *color.Color
}

func New(cfg *config.Config, out io.Writer) *REPL {
	interp := pasci.NewInterpreter()
	interp.Persist = cfg.Persist
	interp.MaxDepth = cfg.MaxDepth

	r := &REPL{
		cfg:       cfg,
		interp:    interp,
		out:       out,
		errColor:  color.New(color.FgRed, color.Bold),
		infoColor: color.New(color.FgCyan),
	}

	if !cfg.Color {
		r.errColor.DisableColor()
		r.infoColor.DisableColor()
	}

	return r
}

func (r *REPL) Interpreter() *pasci.Interpreter {
	return r.interp
}

// Run reads lines until in is exhausted. Errors of a line are reported and the
// loop continues with the next one.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)
		if !scanner.Scan() {
			if r.cfg.Prompt != "" {
				fmt.Fprintln(r.out)
			}

			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := r.Eval(line); err != nil {
			r.ReportError(err)
		}
	}
}

// Eval handles one line of input according to the configured mode.
func (r *REPL) Eval(line string) error {
	if r.PrintTokens {
		toks, err := pasci.NewLexerFromString(line).All()
		if err != nil {
			return err
		}

		for _, tok := range toks {
			r.infoColor.Fprintf(r.out, "%s %s\n", tok.Pos, tok)
		}
	}

	if r.cfg.Mode == config.ModeExpression {
		return r.evalExpression(line)
	}

	return r.evalProgram(line)
}

func (r *REPL) evalExpression(line string) error {
	tree, err := r.interp.ParseExpr(line)
	if err != nil {
		return err
	}

	if r.PrintAST {
		r.infoColor.Fprintln(r.out, tree)
	}

	v, err := r.interp.EvalExpr(tree)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, v)
	return nil
}

func (r *REPL) evalProgram(line string) error {
	tree, err := r.interp.Parse(line)
	if err != nil {
		return err
	}

	if r.PrintAST {
		r.infoColor.Fprintln(r.out, tree)
	}

	if err := r.interp.Exec(tree); err != nil {
		return err
	}

	fmt.Fprintln(r.out, r.interp.Env())
	return nil
}

func (r *REPL) ReportError(err error) {
	r.errColor.Fprint(r.out, "error: ")
	fmt.Fprintln(r.out, describe(err))
}

func describe(err error) string {
	var (
		lexErr    *pasci.LexError
		syntaxErr *pasci.SyntaxError
		nameErr   *pasci.NameError
		divErr    *pasci.DivisionError
		depthErr  *pasci.DepthError
		overErr   *pasci.OverflowError
	)

	switch {
	case errors.As(err, &lexErr):
		return fmt.Sprintf("invalid character %q at %s", lexErr.Char, lexErr.Pos)
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("invalid syntax at %s: unexpected %s", syntaxErr.Pos, syntaxErr.Found)
	case errors.As(err, &nameErr):
		return fmt.Sprintf("undefined name '%s' at %s", nameErr.Name, nameErr.Pos)
	case errors.As(err, &divErr):
		return fmt.Sprintf("division by zero at %s", divErr.Pos)
	case errors.As(err, &depthErr):
		return fmt.Sprintf("expression too deeply nested at %s (limit %d)", depthErr.Pos, depthErr.Limit)
	case errors.As(err, &overErr):
		return fmt.Sprintf("numeric result out of range at %s", overErr.Pos)
	default:
		return err.Error()
	}
}
