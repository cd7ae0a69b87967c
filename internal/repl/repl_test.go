package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pasci.dev/internal/config"
	"go.pasci.dev/pkg"
)

func newTestREPL(mode config.Mode) (*REPL, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Mode = mode
	cfg.Prompt = ""
	cfg.Color = false

	var out bytes.Buffer
	return New(cfg, &out), &out
}

func TestREPLProgramMode(t *testing.T) {
	r, out := newTestREPL(config.ModeProgram)

	input := strings.Join([]string{
		"BEGIN a := 2; b := a * 10 / 4 END.",
		"",
		"BEGIN c := d END.",
		"BEGIN c := a - - b END.",
		"BEGIN c := 1 # 2 END.",
		"BEGIN c := 1 END",
	}, "\n")

	require.NoError(t, r.Run(strings.NewReader(input)))

	assert.Equal(t, strings.Join([]string{
		"{a: 2, b: 5.0}",
		"error: undefined name 'd' at 1:12",
		"{a: 2, b: 5.0, c: 7.0}",
		"error: invalid character '#' at 1:14",
		"error: invalid syntax at 1:17: unexpected EOF",
		"",
	}, "\n"), out.String())
}

func TestREPLExpressionMode(t *testing.T) {
	r, out := newTestREPL(config.ModeExpression)

	input := "7 + 3 * (10 / (12 / (3 + 1) - 1))\n10 - 2 - 3\n1 / 0\n-+-3\n1 +\n"
	require.NoError(t, r.Run(strings.NewReader(input)))

	assert.Equal(t, strings.Join([]string{
		"22.0",
		"5",
		"error: division by zero at 1:3",
		"3",
		"error: invalid syntax at 1:4: unexpected EOF",
		"",
	}, "\n"), out.String())
}

func TestREPLPrintAST(t *testing.T) {
	r, out := newTestREPL(config.ModeExpression)
	r.PrintAST = true

	require.NoError(t, r.Eval("1 + 2 * 3"))
	assert.Equal(t, "(+ 1 (* 2 3))\n7\n", out.String())
}

func TestREPLPrintTokens(t *testing.T) {
	r, out := newTestREPL(config.ModeExpression)
	r.PrintTokens = true

	err := r.Eval("x1")
	var nameErr *pasci.NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, "1:1 ID(x1)\n", out.String())
}

func TestREPLNoPersist(t *testing.T) {
	cfg := config.Default()
	cfg.Prompt = ""
	cfg.Color = false
	cfg.Persist = false

	var out bytes.Buffer
	r := New(cfg, &out)

	require.NoError(t, r.Run(strings.NewReader("BEGIN a := 1 END.\nBEGIN b := 2 END.\n")))
	assert.Equal(t, "{a: 1}\n{b: 2}\n", out.String())
}

func TestREPLMaxDepth(t *testing.T) {
	cfg := config.Default()
	cfg.Prompt = ""
	cfg.Color = false
	cfg.MaxDepth = 2

	var out bytes.Buffer
	r := New(cfg, &out)

	require.NoError(t, r.Eval("BEGIN a := (1) END."))

	err := r.Eval("BEGIN BEGIN BEGIN BEGIN a := ((((1)))) END END END END.")
	var depthErr *pasci.DepthError
	require.True(t, errors.As(err, &depthErr))
	assert.Equal(t, 2, depthErr.Limit)

	r.cfg.Mode = config.ModeExpression

	require.NoError(t, r.Eval("((1))"))

	err = r.Eval("((((1))))")
	require.True(t, errors.As(err, &depthErr))
	assert.Equal(t, "expression too deeply nested at 1:3 (limit 2)", describe(err))
	assert.Equal(t, "{a: 1}\n1\n", out.String())
}

func TestREPLOverflow(t *testing.T) {
	r, out := newTestREPL(config.ModeExpression)

	huge := "1" + strings.Repeat("0", 400)
	require.NoError(t, r.Run(strings.NewReader(huge+" / 1\n"+huge+" * 2\n")))

	assert.Equal(t, "error: numeric result out of range at 1:403\n2"+strings.Repeat("0", 400)+"\n", out.String())
}

func TestDescribeUnknownError(t *testing.T) {
	assert.Equal(t, "boom", describe(errors.New("boom")))
}
