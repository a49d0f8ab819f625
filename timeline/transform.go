package timeline

import (
	"errors"
	"fmt"

	"github.com/Shopify/go-lua"
)

// Transform maps generated values through a Lua function called as
// fn(value, index), where index counts from 0.
type Transform struct {
	fn    string
	state *lua.State
}

// NewTransform loads script and checks that it defines fn as a global
// function.
func NewTransform(script, fn string) (*Transform, error) {
	if fn == "" {
		return nil, errors.New("missing transform function name")
	}
	state := lua.NewState()
	lua.OpenLibraries(state)
	if err := lua.DoString(state, script); err != nil {
		return nil, fmt.Errorf("loading script: %w", err)
	}

	state.Global(fn)
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, fmt.Errorf("transform %v is not a function", fn)
	}

	return &Transform{
		fn:    fn,
		state: state,
	}, nil
}

func (t *Transform) Apply(value float64, index int64) (float64, error) {
	// leave the stack as we found it, error values included
	defer t.state.SetTop(t.state.Top())

	t.state.Global(t.fn)
	t.state.PushNumber(value)
	t.state.PushNumber(float64(index))
	if err := t.state.ProtectedCall(2, 1, 0); err != nil {
		return 0, fmt.Errorf("calling %v: %w", t.fn, err)
	}

	result, ok := t.state.ToNumber(-1)
	if !ok {
		return 0, fmt.Errorf("transform %v returned a non-number", t.fn)
	}
	return result, nil
}
