package command

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/remote/capabilities"
	"sort"
	"sync"
)

// Dispatcher resolves a Command's operation name against a target at
// execution time. New operations are added by registering them, Command
// itself never changes.
type Dispatcher struct {
	lock       sync.RWMutex
	operations map[string]Operation
	aliases    map[string]string
}

func NewDispatcher(ops ...Operation) *Dispatcher {
	d := &Dispatcher{
		operations: map[string]Operation{},
		aliases:    map[string]string{},
	}

	for _, op := range ops {
		d.Register(op)
	}

	return d
}

// Register adds op to the table, replacing any operation of the same name.
func (d *Dispatcher) Register(op Operation) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.operations[op.Name] = op

	for alias, canonical := range d.aliases {
		if canonical == op.Name {
			delete(d.aliases, alias)
		}
	}

	for _, alias := range op.Aliases {
		d.aliases[alias] = op.Name
	}
}

func (d *Dispatcher) Lookup(name string) (Operation, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.lookup(name)
}

func (d *Dispatcher) lookup(name string) (Operation, bool) {
	if op, found := d.operations[name]; found {
		return op, true
	}

	if canonical, found := d.aliases[name]; found {
		op, found := d.operations[canonical]
		return op, found
	}

	return Operation{}, false
}

// Supported returns the sorted names of every operation the target can run.
func (d *Dispatcher) Supported(target any) []string {
	d.lock.RLock()
	defer d.lock.RUnlock()

	var names []string

	for name, op := range d.operations {
		if op.Supports(target) {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

func (d *Dispatcher) Execute(ctx context.Context, target any, c Command) error {
	op, found := d.Lookup(c.operation)
	if !found {
		return fmt.Errorf("%w: unknown operation '%s'", capabilities.ErrUnsupportedOperation, c.operation)
	}

	if !op.Supports(target) {
		return fmt.Errorf("%w: '%s' requires %s, target %T does not implement it", capabilities.ErrUnsupportedOperation, c.operation, op.Capability, target)
	}

	args, err := bind(op.Parameters, c.positional, c.named)
	if err != nil {
		return fmt.Errorf("%s: %w", c.operation, err)
	}

	return op.invoke(ctx, target, args)
}
