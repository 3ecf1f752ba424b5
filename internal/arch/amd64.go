package arch

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Relocation kinds for the amd64 architecture.
const (
	// R_ABS64 patches an 8-byte absolute address.
	R_ABS64 RelocType = iota + 1
	// R_PC32 patches a 4-byte address relative to the relocation site,
	// as x86-64 PC32/PLT32 relocations do.
	R_PC32
)

var errRelocationOutOfBounds = errors.New("relocation exceeds bounds of section")

// AMD64 is the x86-64 architecture adapter, grounded on the
// R_X86_64_64/R_X86_64_PC32 patch behaviour used when merging ELF
// objects into a PE image.
var AMD64 = New("amd64", map[RelocType]PatchFunc{
	R_ABS64: patchAbs64,
	R_PC32:  patchPC32,
})

func patchAbs64(symValue uint64, data []byte, _ uint64) error {
	if outOfBounds(8, data) {
		return fmt.Errorf("R_ABS64: %w", errRelocationOutOfBounds)
	}
	binary.LittleEndian.PutUint64(data[:8], symValue)
	return nil
}

func patchPC32(symValue uint64, data []byte, siteAddress uint64) error {
	if outOfBounds(4, data) {
		return fmt.Errorf("R_PC32: %w", errRelocationOutOfBounds)
	}
	rel := int32(int64(symValue) - int64(siteAddress))
	binary.LittleEndian.PutUint32(data[:4], uint32(rel))
	return nil
}
