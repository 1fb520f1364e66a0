package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Command describes an operation to run against a device which is chosen
// later. It is immutable, With returns a modified copy.
type Command struct {
	operation  string
	positional []any
	named      map[string]any
}

func New(operation string, args ...any) Command {
	return Command{
		operation:  operation,
		positional: append([]any(nil), args...),
	}
}

func (c Command) With(name string, value any) Command {
	named := make(map[string]any, len(c.named)+1)
	for k, v := range c.named {
		named[k] = v
	}
	named[name] = value

	return Command{
		operation:  c.operation,
		positional: c.positional,
		named:      named,
	}
}

func (c Command) Operation() string {
	return c.operation
}

func (c Command) Args() []any {
	return append([]any(nil), c.positional...)
}

func (c Command) Named() map[string]any {
	named := make(map[string]any, len(c.named))
	for k, v := range c.named {
		named[k] = v
	}
	return named
}

func (c Command) Execute(ctx context.Context, target any) error {
	return Default.Execute(ctx, target, c)
}

func (c Command) String() string {
	var parts []string

	for _, v := range c.positional {
		parts = append(parts, fmt.Sprintf("%v", v))
	}

	for _, k := range sortedKeys(c.named) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.named[k]))
	}

	return fmt.Sprintf("%s(%s)", c.operation, strings.Join(parts, ", "))
}

type jsonCommand struct {
	Operation string
	Args      []any          `json:",omitempty"`
	Named     map[string]any `json:",omitempty"`
}

func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonCommand{Operation: c.operation, Args: c.positional, Named: c.named})
}

func (c *Command) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var jc jsonCommand
	if err := dec.Decode(&jc); err != nil {
		return err
	}

	if jc.Operation == "" {
		return fmt.Errorf("command has no operation")
	}

	*c = Command{operation: jc.Operation, positional: jc.Args, named: jc.Named}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
