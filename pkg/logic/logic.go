// Package logic compiles and runs the logic page of a simplate.
//
// A logic page is a list of statements, one per line. A statement either binds
// a name or evaluates an expression for its effect:
//
//	# comments start with a hash
//	name = "name" in qs ? qs.name : "program"
//	greeting = "Greetings, " + name + "!"
//	len(name) > 64 ? abort(400, "name too long") : nil
//
// Expressions use the github.com/expr-lang/expr language. A trailing backslash
// joins a statement with the next line.
package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/builtin"
	"github.com/expr-lang/expr/vm"
)

var (
	// ErrCompile indicates a statement that does not compile.
	ErrCompile = errors.New("logic: compile failed")

	// ErrRun indicates a statement that failed at run time.
	ErrRun = errors.New("logic: run failed")
)

// Env is the namespace a program runs against.
type Env interface {
	// Vars returns the current bindings visible to expressions.
	Vars() map[string]any
	// Set binds name to value.
	Set(name string, value any) error
	// Halted reports whether a statement short-circuited the request.
	Halted() bool
	// Get looks up a name missing from Vars. Unbound names must fail.
	Get(name string) (any, error)
}

// Statement is one compiled line of a logic page.
type Statement struct {
	program *vm.Program
	Name    string   // empty for bare expressions
	Names   []string // names read from the environment
	Source  string
	Line    int
}

// Program is a compiled logic page. It holds no per-request state and is safe
// for concurrent use.
type Program struct {
	Statements []Statement
}

// Compile compiles src. firstLine is the line number of src's first line in
// its file and is used for error messages.
func Compile(src []byte, firstLine int) (*Program, error) {
	if firstLine < 1 {
		firstLine = 1
	}

	p := &Program{}
	var (
		buf   strings.Builder
		start int
	)

	flush := func() error {
		code := strings.TrimSpace(buf.String())
		buf.Reset()
		if code == "" {
			return nil
		}
		stmt, err := compileStatement(code, start)
		if err != nil {
			return err
		}
		p.Statements = append(p.Statements, stmt)
		return nil
	}

	for i, line := range strings.Split(string(src), "\n") {
		line = strings.TrimRight(line, "\r")
		lineNo := firstLine + i

		if buf.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			start = lineNo
		}

		if cont, ok := strings.CutSuffix(line, `\`); ok {
			buf.WriteString(cont)
			buf.WriteByte(' ')
			continue
		}

		buf.WriteString(line)
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return p, nil
}

// Run executes the statements in order against env. It stops early, without
// error, once env reports a short circuit. A statement that reads a name
// bound neither in Vars nor by Get fails with the error Get returns.
func (p *Program) Run(env Env) error {
	if p == nil || len(p.Statements) == 0 {
		return nil
	}

	vars := env.Vars()
	for _, stmt := range p.Statements {
		for _, name := range stmt.Names {
			if _, ok := vars[name]; ok {
				continue
			}
			v, err := env.Get(name)
			if err != nil {
				return fmt.Errorf("%w: line %d: %w", ErrRun, stmt.Line, err)
			}
			vars[name] = v
		}

		out, err := expr.Run(stmt.program, vars)
		if env.Halted() {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: line %d: %s: %w", ErrRun, stmt.Line, stmt.Source, err)
		}
		if stmt.Name == "" {
			continue
		}
		if err := env.Set(stmt.Name, out); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrRun, stmt.Line, err)
		}
		vars[stmt.Name] = out
	}

	return nil
}

func compileStatement(code string, line int) (Statement, error) {
	name, body := splitAssignment(code)

	program, err := expr.Compile(body)
	if err != nil {
		return Statement{}, fmt.Errorf("%w: line %d: %w", ErrCompile, line, err)
	}

	return Statement{program: program, Name: name, Names: FreeNames(program), Source: code, Line: line}, nil
}

// FreeNames returns the names program reads from its environment, in order
// of first use. Builtin functions, let bindings and $env are not included.
func FreeNames(program *vm.Program) []string {
	node := program.Node()
	lets := letNames{}
	ast.Walk(&node, lets)

	v := &freeNames{seen: map[string]bool{}, lets: lets}
	ast.Walk(&node, v)
	return v.names
}

type letNames map[string]bool

func (l letNames) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.VariableDeclaratorNode); ok {
		l[n.Name] = true
	}
}

type freeNames struct {
	names []string
	seen  map[string]bool
	lets  letNames
}

func (v *freeNames) Visit(node *ast.Node) {
	n, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}
	name := n.Value
	if v.seen[name] || v.lets[name] || strings.HasPrefix(name, "$") {
		return
	}
	if _, ok := builtin.Index[name]; ok {
		return
	}
	v.seen[name] = true
	v.names = append(v.names, name)
}
