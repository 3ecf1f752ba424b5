package object

// Symbol is a named reference resolved to an offset within a section.
type Symbol struct {
	Name    string
	Section string
	Value   uint64
}

// Relocation is a deferred patch request: at relocation time, Sym is
// resolved to an absolute address and the bytes at Section[Offset:] are
// patched by the architecture's handler for Type.
type Relocation struct {
	Sym     string
	Offset  uint64
	Type    uint32
	Section string
}
