package object

import "fmt"

// DuplicateSymbolError is returned when a symbol name collides with one
// already present in an object's symbol table.
type DuplicateSymbolError struct {
	Name string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("symbol %q defined more than once", e.Name)
}

// DuplicateSectionError is returned when the layout engine tries to
// synthesize a boundary section whose name already exists.
type DuplicateSectionError struct {
	Name string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("section %q already exists", e.Name)
}

// UndefinedReferenceError is returned by the relocator when a relocation
// targets a symbol with no definition.
type UndefinedReferenceError struct {
	Symbol string
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("undefined reference %q", e.Symbol)
}

// NotLaidOutError is returned when a caller asks for an absolute address
// before the layout engine has assigned one.
type NotLaidOutError struct {
	Section string
}

func (e *NotLaidOutError) Error() string {
	return fmt.Sprintf("section %q has not been assigned an address by layout", e.Section)
}
