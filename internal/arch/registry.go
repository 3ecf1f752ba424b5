package arch

import "fmt"

// UnknownArchitectureError is returned by Lookup when no architecture of
// that name is registered.
type UnknownArchitectureError struct {
	Name string
}

func (e *UnknownArchitectureError) Error() string {
	return fmt.Sprintf("unknown architecture %q", e.Name)
}

var registry = map[string]*Arch{
	AMD64.Name:   AMD64,
	RISCV32.Name: RISCV32,
}

// Lookup returns the registered Arch for name, or an
// UnknownArchitectureError if none is registered under that name.
func Lookup(name string) (*Arch, error) {
	a, ok := registry[name]
	if !ok {
		return nil, &UnknownArchitectureError{Name: name}
	}
	return a, nil
}
