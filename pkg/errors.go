package pasci

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// LexError reports a character the scanner has no rule for.
type LexError struct {
	Pos  lexer.Position
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s invalid character %q", e.Pos, e.Char)
}

// SyntaxError reports a token the grammar does not allow at its position.
type SyntaxError struct {
	Pos      lexer.Position
	Found    Token
	Expected []TokenType
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s invalid syntax: unexpected %s", e.Pos, e.Found)
	}

	expected := make([]string, len(e.Expected))
	for i, typ := range e.Expected {
		expected[i] = typ.String()
	}

	return fmt.Sprintf("%s invalid syntax: expected %s, found %s", e.Pos, strings.Join(expected, " or "), e.Found)
}

// NameError reports a read of a variable that was never assigned.
type NameError struct {
	Pos  lexer.Position
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s undefined name '%s'", e.Pos, e.Name)
}

// DivisionError reports a division whose right operand evaluated to zero.
type DivisionError struct {
	Pos lexer.Position
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("%s division by zero", e.Pos)
}

// DepthError reports source nested deeper than the configured limit.
type DepthError struct {
	Pos   lexer.Position
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s expression too deeply nested (limit %d)", e.Pos, e.Limit)
}

// OverflowError reports a real result too large to represent.
type OverflowError struct {
	Pos lexer.Position
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s numeric result out of range", e.Pos)
}
