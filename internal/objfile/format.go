// Package objfile serializes and deserializes the on-disk object file
// format this linker reads and writes: a fixed header, a string table,
// a data blob holding every section's raw bytes, and fixed-row tables
// for sections, symbols, relocations, and (optionally) debug records.
//
// The core linker package never depends on this package's encoding
// directly — per the specification, serialization is a concern
// delegated to the object module, not the merge/layout/relocate core.
package objfile

import "errors"

const (
	magic   uint32 = 0x4C4B4346 // "LKCF"
	version uint8  = 1

	flagHasDebug uint8 = 1 << 0
)

var (
	errBadMagic                = errors.New("objfile: bad magic number")
	errUnsupportedVersion      = errors.New("objfile: unsupported format version")
	errStringOffsetOutOfRange  = errors.New("objfile: string offset out of range")
	errUnterminatedString      = errors.New("objfile: string table entry has no terminator")
	errSectionIndexOutOfRange  = errors.New("objfile: section data exceeds data blob")
)

// header is the fixed-size file header, packed with struc in little
// endian order, mirroring the WOFHeader approach of yld's object format.
type header struct {
	Magic    uint32
	Version  uint8
	Flags    uint8
	Reserved uint16

	ArchNameOffset uint32

	SectionCount     uint32
	SymbolCount      uint32
	RelocationCount  uint32
	DebugLocCount    uint32
	DebugFuncCount   uint32
	DebugVarCount    uint32
	DebugTypeCount   uint32

	StringTableSize uint32
	DataSize        uint32
}

type sectionRecord struct {
	NameOffset uint32
	Alignment  uint32
	DataOffset uint32
	DataSize   uint32
}

type symbolRecord struct {
	NameOffset        uint32
	SectionNameOffset uint32
	Value             uint64
}

type relocationRecord struct {
	SymNameOffset     uint32
	SectionNameOffset uint32
	Offset            uint64
	Type              uint32
}

type debugLocationRecord struct {
	LocFileOffset         uint32
	LocLine               uint32
	AddrSectionNameOffset uint32
	AddrOffset            uint64
}

type debugFunctionRecord struct {
	NameOffset             uint32
	LocFileOffset          uint32
	LocLine                uint32
	BeginSectionNameOffset uint32
	BeginOffset            uint64
	EndSectionNameOffset   uint32
	EndOffset              uint64
}

type debugVariableRecord struct {
	NameOffset            uint32
	TypeOffset            uint32
	LocFileOffset         uint32
	LocLine               uint32
	AddrSectionNameOffset uint32
	AddrOffset            uint64
}

type debugTypeRecord struct {
	NameOffset       uint32
	DefinitionOffset uint32
}
