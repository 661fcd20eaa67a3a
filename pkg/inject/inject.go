package inject

import (
	"fmt"
	"strings"
)

// Param declares one named parameter of a callable.
type Param struct {
	Default    any
	Name       string
	HasDefault bool
}

// Required declares a parameter without a default value.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter that falls back to def when no value is available.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Signature is the ordered parameter table of a callable.
type Signature []Param

// Names returns the declared parameter names in declaration order.
func (s Signature) Names() []string {
	names := make([]string, 0, len(s))
	for _, p := range s {
		names = append(names, p.Name)
	}
	return names
}

// Has reports whether name is declared.
func (s Signature) Has(name string) bool {
	for _, p := range s {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Merge returns a new signature holding s followed by the params not already
// declared in s. The first declaration of a name wins.
func (s Signature) Merge(params ...Param) Signature {
	out := make(Signature, 0, len(s)+len(params))
	out = append(out, s...)
	for _, p := range params {
		if !out.Has(p.Name) {
			out = append(out, p)
		}
	}
	return out
}

// Args holds resolved keyword arguments.
type Args map[string]any

// Value returns the typed argument bound to name.
// The second result is false if the name is unbound or has a different type.
func Value[T any](a Args, name string) (T, bool) {
	v, ok := a[name].(T)
	return v, ok
}

// Resolve binds the parameters declared in sig from available.
// Values in available win over declared defaults; parameters that are neither
// available nor defaulted are omitted. Names not declared in sig are never bound.
func Resolve(sig Signature, available map[string]any) Args {
	args := make(Args, len(sig))
	for _, p := range sig {
		if v, ok := available[p.Name]; ok {
			args[p.Name] = v
			continue
		}
		if p.HasDefault {
			args[p.Name] = p.Default
		}
	}
	return args
}

// CheckRequired returns ErrMissingArgument if a parameter declared without a
// default is not bound in args.
func CheckRequired(sig Signature, args Args) error {
	var missing []string
	for _, p := range sig {
		if _, ok := args[p.Name]; !ok && !p.HasDefault {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(missing, ", "))
	}
	return nil
}

// Func pairs a callable with its declared parameters.
type Func[R any] struct {
	Call   func(Args) (R, error)
	Params Signature
}

// Invoke resolves the declared parameters from available and calls f.
// It fails with ErrMissingArgument, without calling f, when a required
// parameter cannot be bound.
func (f Func[R]) Invoke(available map[string]any) (R, error) {
	args := Resolve(f.Params, available)
	if err := CheckRequired(f.Params, args); err != nil {
		var zero R
		return zero, err
	}
	return f.Call(args)
}
