package test

import (
	"fmt"
	"math/rand"
	"strings"
)

var validTokens = []string{
	"BEGIN", "END", "number", "a", "b2", "x", "averyveryverylongidentifiername",
	":=", "+", "-", "*", "/", "(", ")", ";", ".",
	"0", "7", "123", "321", "98765432109876543210", "\n", "\t",
}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, validTokens[rand.Intn(len(validTokens))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram builds a program of size assignments that parses and
// evaluates without error. Every statement only reads variables assigned before it.
func GetRandomProgram(size int) string {
	var prog strings.Builder
	prog.WriteString("BEGIN\n")

	for i := 0; i < size; i++ {
		if i != 0 {
			prog.WriteString(";\n")
		}

		expr, _ := randomExpr(i, 3)
		fmt.Fprintf(&prog, "    v%d := %s", i, expr)
	}
	prog.WriteString("\nEND.")

	return prog.String()
}

// randomExpr never multiplies two variables, so values only grow linearly in
// bits with the program size.
func randomExpr(defined int, depth int) (string, bool) {
	if depth == 0 {
		return randomOperand(defined)
	}

	switch rand.Intn(5) {
	case 0:
		expr, hasVar := randomExpr(defined, depth-1)
		return "-" + expr, hasVar
	case 1:
		expr, hasVar := randomExpr(defined, depth-1)
		return "(" + expr + ")", hasVar
	default:
		lhs, lhsVar := randomExpr(defined, depth-1)
		rhs, rhsVar := randomExpr(defined, depth-1)

		ops := []string{"+", "-", "*"}
		if lhsVar && rhsVar {
			ops = ops[:2]
		}

		return "(" + lhs + " " + ops[rand.Intn(len(ops))] + " " + rhs + ")", lhsVar || rhsVar
	}
}

func randomOperand(defined int) (string, bool) {
	if defined > 0 && rand.Intn(2) == 0 {
		return fmt.Sprintf("v%d", rand.Intn(defined)), true
	}

	return fmt.Sprint(rand.Intn(1000)), false
}
