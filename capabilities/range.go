package capabilities

import "fmt"

// Range is an inclusive bound on an integer setting.
type Range struct {
	Min int
	Max int
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Valid() bool {
	return r.Min <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}
