package pasci

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.pasci.dev/internal/test"
)

func TestInterpreterPersist(t *testing.T) {
	i := NewInterpreter()

	require.NoError(t, i.Run("BEGIN a := 1 END."))
	require.NoError(t, i.Run("BEGIN b := a + 1 END."))
	assert.Equal(t, "{a: 1, b: 2}", i.Env().String())

	v, err := i.Calc("a * 10 + b")
	require.NoError(t, err)
	assert.Equal(t, "12", v.String())

	i.Reset()
	_, err = i.Calc("a")
	var nameErr *NameError
	assert.True(t, errors.As(err, &nameErr))
}

func TestInterpreterNoPersist(t *testing.T) {
	i := NewInterpreter()
	i.Persist = false

	require.NoError(t, i.Run("BEGIN a := 1 END."))
	assert.Equal(t, "{a: 1}", i.Env().String())

	err := i.Run("BEGIN b := a + 1 END.")
	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, "a", nameErr.Name)
}

func TestInterpreterNoPersistResetsOnParseFailure(t *testing.T) {
	i := NewInterpreter()
	i.Persist = false

	require.NoError(t, i.Run("BEGIN a := 1 END."))

	err := i.Run("BEGIN a := 1 b := 2 END.")
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "{}", i.Env().String())

	require.NoError(t, i.Run("BEGIN a := 1 END."))

	err = i.Run("BEGIN b := c END.")
	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, "{}", i.Env().String())

	require.NoError(t, i.Run("BEGIN a := 1 END."))

	_, err = i.Calc("1 +")
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "{}", i.Env().String())
}

func TestInterpreterParseUsesMaxDepth(t *testing.T) {
	i := NewInterpreter()
	i.MaxDepth = 2

	_, err := i.Parse("BEGIN BEGIN a := 1 END END.")
	require.NoError(t, err)

	_, err = i.Parse("BEGIN BEGIN BEGIN a := 1 END END END.")
	var depthErr *DepthError
	require.True(t, errors.As(err, &depthErr))
	assert.Equal(t, 2, depthErr.Limit)

	_, err = i.ParseExpr("((1))")
	require.NoError(t, err)

	_, err = i.ParseExpr("(((1)))")
	assert.True(t, errors.As(err, &depthErr))
}

func TestInterpreterFailedRunLeavesEnvironment(t *testing.T) {
	i := NewInterpreter()

	require.NoError(t, i.Run("BEGIN a := 1 END."))

	err := i.Run("BEGIN a := 5; b := 1 / 0 END.")
	var divErr *DivisionError
	require.True(t, errors.As(err, &divErr))
	assert.Equal(t, "{a: 1}", i.Env().String())

	err = i.Run("BEGIN a := 5 b := 1 END.")
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "{a: 1}", i.Env().String())
}

func TestInterpreterMaxDepth(t *testing.T) {
	i := NewInterpreter()
	i.MaxDepth = 3

	_, err := i.Calc("((1))")
	require.NoError(t, err)

	_, err = i.Calc("((((1))))")
	var depthErr *DepthError
	assert.True(t, errors.As(err, &depthErr))
}

func TestInterpreterRunFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "prog.pas")
	require.NoError(t, os.WriteFile(filename, []byte("BEGIN\n  x := 11;\n  y := z\nEND.\n"), 0o644))

	i := NewInterpreter()
	err := i.RunFile(filename)

	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, filename, nameErr.Pos.Filename)
	assert.Equal(t, 3, nameErr.Pos.Line)

	err = i.RunFile(filepath.Join(dir, "missing.pas"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInterpreterRandomPrograms(t *testing.T) {
	for n := 0; n < 20; n++ {
		i := NewInterpreter()
		require.NoError(t, i.Run(test.GetRandomProgram(25)))
		assert.Equal(t, 25, i.Env().Len())
	}
}

var benchEnv *Environment

func benchmarkInterpreter(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := test.GetRandomProgram(size)
		i := NewInterpreter()
		b.StartTimer()

		if err := i.Run(data); err != nil {
			b.Fatal(err)
		}

		benchEnv = i.Env()
	}
}

func BenchmarkInterpreter10(b *testing.B) {
	benchmarkInterpreter(10, b)
}

func BenchmarkInterpreter100(b *testing.B) {
	benchmarkInterpreter(100, b)
}

func BenchmarkInterpreter1000(b *testing.B) {
	benchmarkInterpreter(1000, b)
}
