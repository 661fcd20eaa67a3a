package logic_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/pkg/logic"
)

// mapEnv is a minimal Env backed by a map.
type mapEnv struct {
	vars   map[string]any
	halted bool
}

func newEnv(vars map[string]any) *mapEnv {
	if vars == nil {
		vars = map[string]any{}
	}
	e := &mapEnv{vars: vars}
	e.vars["abort"] = func(code int) bool {
		e.halted = true
		return true
	}
	return e
}

func (e *mapEnv) Vars() map[string]any {
	out := make(map[string]any, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

func (e *mapEnv) Set(name string, value any) error {
	if name == "forbidden" {
		return errors.New("reserved")
	}
	e.vars[name] = value
	return nil
}

func (e *mapEnv) Halted() bool { return e.halted }

func (e *mapEnv) Get(name string) (any, error) {
	if v, ok := e.vars[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", errUnbound, name)
}

var errUnbound = errors.New("unbound")

func TestCompileAndRun(t *testing.T) {
	t.Parallel()

	t.Run("binds names in order", func(t *testing.T) {
		t.Parallel()

		src := "# greet\nname = \"program\"\n\ngreeting = \"Greetings, \" + name + \"!\"\n"
		p, err := logic.Compile([]byte(src), 1)
		require.NoError(t, err)
		require.Len(t, p.Statements, 2)
		require.Equal(t, 2, p.Statements[0].Line)
		require.Equal(t, "greeting", p.Statements[1].Name)

		env := newEnv(nil)
		require.NoError(t, p.Run(env))
		require.Equal(t, "Greetings, program!", env.vars["greeting"])
	})

	t.Run("reads nested request values", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("foo = request.cookie['Foo']"), 1)
		require.NoError(t, err)

		env := newEnv(map[string]any{
			"request": map[string]any{"cookie": map[string]string{"Foo": "bar"}},
		})
		require.NoError(t, p.Run(env))
		require.Equal(t, "bar", env.vars["foo"])
	})

	t.Run("comparison is not an assignment", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("x == 1"), 1)
		require.NoError(t, err)
		require.Empty(t, p.Statements[0].Name)
	})

	t.Run("joins continued lines", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("total = 1 + \\\n  2 + \\\n  3\n"), 10)
		require.NoError(t, err)
		require.Len(t, p.Statements, 1)
		require.Equal(t, 10, p.Statements[0].Line)

		env := newEnv(nil)
		require.NoError(t, p.Run(env))
		require.Equal(t, 6, env.vars["total"])
	})

	t.Run("stops after a short circuit", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("abort(404)\nafter = true"), 1)
		require.NoError(t, err)

		env := newEnv(nil)
		require.NoError(t, p.Run(env))
		require.True(t, env.halted)
		require.NotContains(t, env.vars, "after")
	})

	t.Run("empty program", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile(nil, 1)
		require.NoError(t, err)
		require.NoError(t, p.Run(newEnv(nil)))

		var nilProgram *logic.Program
		require.NoError(t, nilProgram.Run(newEnv(nil)))
	})
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	_, err := logic.Compile([]byte("ok = 1\nbroken = (1 +"), 5)
	require.ErrorIs(t, err, logic.ErrCompile)
	require.Contains(t, err.Error(), "line 6")
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	t.Run("runtime failure", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("x = 1 / zero"), 1)
		require.NoError(t, err)

		err = p.Run(newEnv(map[string]any{"zero": "not a number"}))
		require.ErrorIs(t, err, logic.ErrRun)
	})

	t.Run("unbound name", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("first = 1\nfoo = nosuchname"), 3)
		require.NoError(t, err)

		env := newEnv(nil)
		err = p.Run(env)
		require.ErrorIs(t, err, logic.ErrRun)
		require.ErrorIs(t, err, errUnbound)
		require.Contains(t, err.Error(), "line 4")
		require.Contains(t, err.Error(), "nosuchname")
		require.Equal(t, 1, env.vars["first"])
		require.NotContains(t, env.vars, "foo")
	})

	t.Run("unbound name in untaken branch", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("x = true ? 1 : missing"), 1)
		require.NoError(t, err)
		require.ErrorIs(t, p.Run(newEnv(nil)), errUnbound)
	})

	t.Run("rejected binding", func(t *testing.T) {
		t.Parallel()

		p, err := logic.Compile([]byte("forbidden = 1"), 1)
		require.NoError(t, err)

		err = p.Run(newEnv(nil))
		require.ErrorIs(t, err, logic.ErrRun)
	})
}

func TestFreeNames(t *testing.T) {
	t.Parallel()

	p, err := logic.Compile([]byte(`greeting = "name" in qs ? qs.name + suffix : upper(fallback)`), 1)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"qs", "suffix", "fallback"}, p.Statements[0].Names)

	program, err := expr.Compile("let n = len(items); n > limit")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"items", "limit"}, logic.FreeNames(program))
}
