package arch

import (
	"encoding/binary"
	"fmt"
)

// Relocation kinds for the riscv32 architecture. Each patches a single
// 32-bit instruction word, preserving every field but the immediate —
// the single-instruction analogue of the two-word LUI+immediate
// patching technique used by simpler ISAs that lack PC-relative
// addressing modes.
const (
	// R_HI20 patches the upper 20 immediate bits of a U-type instruction
	// (e.g. LUI) with bits [31:12] of the resolved address.
	R_HI20 RelocType = iota + 1
	// R_LO12 patches the 12-bit immediate of an I-type instruction (e.g.
	// ADDI) with bits [11:0] of the resolved address.
	R_LO12
)

// RISCV32 is the riscv32 architecture adapter.
var RISCV32 = New("riscv32", map[RelocType]PatchFunc{
	R_HI20: patchHI20,
	R_LO12: patchLO12,
})

func patchHI20(symValue uint64, data []byte, _ uint64) error {
	if outOfBounds(4, data) {
		return fmt.Errorf("R_HI20: %w", errRelocationOutOfBounds)
	}
	word := binary.LittleEndian.Uint32(data[:4])
	imm := uint32(symValue>>12) & 0xFFFFF
	word = (word & 0xFFF) | (imm << 12)
	binary.LittleEndian.PutUint32(data[:4], word)
	return nil
}

func patchLO12(symValue uint64, data []byte, _ uint64) error {
	if outOfBounds(4, data) {
		return fmt.Errorf("R_LO12: %w", errRelocationOutOfBounds)
	}
	word := binary.LittleEndian.Uint32(data[:4])
	imm := uint32(symValue) & 0xFFF
	word = (word & 0xFFFFF) | (imm << 20)
	binary.LittleEndian.PutUint32(data[:4], word)
	return nil
}
