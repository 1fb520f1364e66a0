package command

import (
	"encoding/json"
	"fmt"
	"github.com/shimmeringbee/remote/capabilities"
	"math"
)

type Parameter struct {
	Name    string
	Aliases []string
}

func (p Parameter) matches(name string) bool {
	if p.Name == name {
		return true
	}

	for _, alias := range p.Aliases {
		if alias == name {
			return true
		}
	}

	return false
}

// Arguments are a command's values bound to an operation's parameters, keyed
// by parameter name.
type Arguments struct {
	values map[string]any
}

func (a Arguments) Value(name string) (any, bool) {
	v, found := a.values[name]
	return v, found
}

func (a Arguments) Int(name string) (int, error) {
	v, found := a.values[name]
	if !found {
		return 0, fmt.Errorf("%w: missing argument '%s'", capabilities.ErrInvalidArgument, name)
	}

	i, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: argument '%s' must be an integer, got %T(%v)", capabilities.ErrInvalidArgument, name, v, v)
	}

	return i, nil
}

func bind(params []Parameter, positional []any, named map[string]any) (Arguments, error) {
	args := Arguments{values: make(map[string]any, len(params))}

	if len(positional) > len(params) {
		return args, fmt.Errorf("%w: takes %d arguments, %d given", capabilities.ErrInvalidArgument, len(params), len(positional))
	}

	for i, v := range positional {
		args.values[params[i].Name] = v
	}

	for _, k := range sortedKeys(named) {
		param, found := findParameter(params, k)
		if !found {
			return args, fmt.Errorf("%w: unexpected argument '%s'", capabilities.ErrInvalidArgument, k)
		}

		if _, set := args.values[param.Name]; set {
			return args, fmt.Errorf("%w: argument '%s' given more than once", capabilities.ErrInvalidArgument, param.Name)
		}

		args.values[param.Name] = named[k]
	}

	for _, p := range params {
		if _, set := args.values[p.Name]; !set {
			return args, fmt.Errorf("%w: missing argument '%s'", capabilities.ErrInvalidArgument, p.Name)
		}
	}

	return args, nil
}

func findParameter(params []Parameter, name string) (Parameter, bool) {
	for _, p := range params {
		if p.matches(name) {
			return p, true
		}
	}

	return Parameter{}, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return intFromInt64(n)
	case uint:
		return intFromUint64(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return intFromUint64(uint64(n))
	case uint64:
		return intFromUint64(n)
	case float32:
		return intFromFloat64(float64(n))
	case float64:
		return intFromFloat64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return intFromInt64(i)
		}

		if f, err := n.Float64(); err == nil {
			return intFromFloat64(f)
		}
	}

	return 0, false
}

func intFromInt64(i int64) (int, bool) {
	if i < math.MinInt || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}

func intFromUint64(u uint64) (int, bool) {
	if u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}

func intFromFloat64(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}
