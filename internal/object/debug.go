package object

// Addr is a debug-info address: a logical (section, offset) reference
// rather than an absolute address, so that merging and layout can
// retarget it without touching the payload that carries it.
type Addr struct {
	Section string
	Offset  uint64
}

// SourceLoc is a source-level position, used by debug records that
// refer back to the original source text.
type SourceLoc struct {
	File string
	Line int
}

// DebugLocation maps a source location to an instruction address.
type DebugLocation struct {
	Loc     SourceLoc
	Address Addr
}

// DebugFunction records a function's extent in the output.
type DebugFunction struct {
	Name  string
	Loc   SourceLoc
	Begin Addr
	End   Addr
}

// DebugVariable records a variable's address and declared type.
type DebugVariable struct {
	Name    string
	Type    string
	Loc     SourceLoc
	Address Addr
}

// DebugType is an untyped-by-address debug record: it carries no
// (section, offset) pair, so merging copies it through unchanged.
type DebugType struct {
	Name       string
	Definition string
}

// DebugInfo is the debug-record container carried by an Object.
type DebugInfo struct {
	Locations []DebugLocation
	Functions []DebugFunction
	Variables []DebugVariable
	Types     []DebugType
}
