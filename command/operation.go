package command

import (
	"context"
	"github.com/shimmeringbee/remote/capabilities"
)

// Operation is one entry in a dispatcher's table: a name, the parameters it
// binds and the capability a target must implement for it to run.
type Operation struct {
	Name       string
	Aliases    []string
	Capability capabilities.Capability
	Parameters []Parameter

	supports func(target any) bool
	invoke   func(ctx context.Context, target any, args Arguments) error
}

// Bind builds an Operation which is only supported by targets implementing C.
func Bind[C any](name string, capability capabilities.Capability, params []Parameter, fn func(ctx context.Context, c C, args Arguments) error) Operation {
	return Operation{
		Name:       name,
		Capability: capability,
		Parameters: params,
		supports: func(target any) bool {
			_, ok := target.(C)
			return ok
		},
		invoke: func(ctx context.Context, target any, args Arguments) error {
			return fn(ctx, target.(C), args)
		},
	}
}

func (o Operation) WithAliases(aliases ...string) Operation {
	o.Aliases = append(append([]string(nil), o.Aliases...), aliases...)
	return o
}

func (o Operation) Supports(target any) bool {
	return o.supports != nil && o.supports(target)
}
