// Package arch is the registry of relocation kinds: each kind is a pure
// byte-patching function, closed and known statically per architecture.
// No component other than this package encodes per-ISA knowledge.
package arch

import "fmt"

// RelocType identifies an architecture-defined relocation kind.
type RelocType uint32

// PatchFunc mutates data in place, patching the instruction or word at
// its start using symValue (the resolved absolute address of the
// relocation's target symbol) and siteAddress (the absolute address of
// the relocation site itself, needed for PC-relative kinds).
type PatchFunc func(symValue uint64, data []byte, siteAddress uint64) error

// UnknownRelocationError is returned by GetReloc when typ has no
// registered patch function.
type UnknownRelocationError struct {
	Type RelocType
}

func (e *UnknownRelocationError) Error() string {
	return fmt.Sprintf("unknown relocation type 0x%x", uint32(e.Type))
}

// Arch is a closed, reentrant registry of relocation kinds for one
// architecture. It carries no shared state: every PatchFunc is pure.
type Arch struct {
	Name   string
	relocs map[RelocType]PatchFunc
}

// New returns an Arch with the given name and relocation table.
func New(name string, relocs map[RelocType]PatchFunc) *Arch {
	return &Arch{Name: name, relocs: relocs}
}

// GetReloc returns the patch function registered for typ, or
// UnknownRelocationError if none is registered.
func (a *Arch) GetReloc(typ RelocType) (PatchFunc, error) {
	f, ok := a.relocs[typ]
	if !ok {
		return nil, &UnknownRelocationError{Type: typ}
	}
	return f, nil
}

func outOfBounds(width int, data []byte) bool {
	return len(data) < width
}
