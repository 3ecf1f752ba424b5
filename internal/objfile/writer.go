package objfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/davejbax/linkcore/internal/align"
	"github.com/davejbax/linkcore/internal/iometa"
	"github.com/davejbax/linkcore/internal/object"
	"github.com/lunixbochs/struc"
)

// Write serializes obj to w in the on-disk object file format: a fixed
// header, a string table, a data blob holding every section's raw
// bytes, and a fixed-row table per record kind. Debug tables are
// written only if obj.Debug holds any records. It returns the total
// number of bytes written to w.
func Write(w io.Writer, obj *object.Object) (int64, error) {
	strs := newStringTable()

	var dataBuf bytes.Buffer
	dataWriter := &iometa.CountingWriter{Writer: &dataBuf}

	sections := obj.Sections()
	sectionRecords := make([]sectionRecord, len(sections))
	for i, s := range sections {
		aligned := align.Address(uint64(dataWriter.BytesWritten()), s.Alignment)
		if pad := int(aligned) - dataWriter.BytesWritten(); pad > 0 {
			if err := iometa.WriteZeros(dataWriter, pad); err != nil {
				return 0, fmt.Errorf("objfile: pad section %q to alignment: %w", s.Name, err)
			}
		}

		sectionRecords[i] = sectionRecord{
			NameOffset: strs.add(s.Name),
			Alignment:  uint32(s.Alignment),
			DataOffset: uint32(dataWriter.BytesWritten()),
			DataSize:   uint32(len(s.Data)),
		}

		r := s.Open()
		if _, err := io.Copy(dataWriter, r); err != nil {
			r.Close()
			return 0, fmt.Errorf("objfile: copy section %q data: %w", s.Name, err)
		}
		r.Close()
	}

	// Symbol map iteration order is unspecified; sort by name so that
	// two writes of an equivalent object produce identical bytes.
	symbols := obj.Symbols()
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Name < symbols[j].Name })
	symbolRecords := make([]symbolRecord, len(symbols))
	for i, sym := range symbols {
		symbolRecords[i] = symbolRecord{
			NameOffset:        strs.add(sym.Name),
			SectionNameOffset: strs.add(sym.Section),
			Value:             sym.Value,
		}
	}

	relocRecords := make([]relocationRecord, len(obj.Relocations))
	for i, r := range obj.Relocations {
		relocRecords[i] = relocationRecord{
			SymNameOffset:     strs.add(r.Sym),
			SectionNameOffset: strs.add(r.Section),
			Offset:            r.Offset,
			Type:              r.Type,
		}
	}

	hasDebug := len(obj.Debug.Locations) > 0 || len(obj.Debug.Functions) > 0 ||
		len(obj.Debug.Variables) > 0 || len(obj.Debug.Types) > 0

	locRecords := make([]debugLocationRecord, len(obj.Debug.Locations))
	for i, l := range obj.Debug.Locations {
		locRecords[i] = debugLocationRecord{
			LocFileOffset:         strs.add(l.Loc.File),
			LocLine:               uint32(l.Loc.Line),
			AddrSectionNameOffset: strs.add(l.Address.Section),
			AddrOffset:            l.Address.Offset,
		}
	}

	funcRecords := make([]debugFunctionRecord, len(obj.Debug.Functions))
	for i, f := range obj.Debug.Functions {
		funcRecords[i] = debugFunctionRecord{
			NameOffset:             strs.add(f.Name),
			LocFileOffset:          strs.add(f.Loc.File),
			LocLine:                uint32(f.Loc.Line),
			BeginSectionNameOffset: strs.add(f.Begin.Section),
			BeginOffset:            f.Begin.Offset,
			EndSectionNameOffset:   strs.add(f.End.Section),
			EndOffset:              f.End.Offset,
		}
	}

	varRecords := make([]debugVariableRecord, len(obj.Debug.Variables))
	for i, v := range obj.Debug.Variables {
		varRecords[i] = debugVariableRecord{
			NameOffset:            strs.add(v.Name),
			TypeOffset:            strs.add(v.Type),
			LocFileOffset:         strs.add(v.Loc.File),
			LocLine:               uint32(v.Loc.Line),
			AddrSectionNameOffset: strs.add(v.Address.Section),
			AddrOffset:            v.Address.Offset,
		}
	}

	typeRecords := make([]debugTypeRecord, len(obj.Debug.Types))
	for i, t := range obj.Debug.Types {
		typeRecords[i] = debugTypeRecord{
			NameOffset:       strs.add(t.Name),
			DefinitionOffset: strs.add(t.Definition),
		}
	}

	var flags uint8
	if hasDebug {
		flags |= flagHasDebug
	}

	h := header{
		Magic:           magic,
		Version:         version,
		Flags:           flags,
		ArchNameOffset:  strs.add(obj.Arch),
		SectionCount:    uint32(len(sectionRecords)),
		SymbolCount:     uint32(len(symbolRecords)),
		RelocationCount: uint32(len(relocRecords)),
		DebugLocCount:   uint32(len(locRecords)),
		DebugFuncCount:  uint32(len(funcRecords)),
		DebugVarCount:   uint32(len(varRecords)),
		DebugTypeCount:  uint32(len(typeRecords)),
		StringTableSize: uint32(strs.buf.Len()),
		DataSize:        uint32(dataWriter.BytesWritten()),
	}

	cw := &iometa.CountingWriter{Writer: w}
	opts := &struc.Options{Order: binary.LittleEndian}

	if err := struc.PackWithOptions(cw, &h, opts); err != nil {
		return 0, fmt.Errorf("objfile: write header: %w", err)
	}
	if _, err := cw.Write(strs.bytes()); err != nil {
		return 0, fmt.Errorf("objfile: write string table: %w", err)
	}
	if _, err := cw.Write(dataBuf.Bytes()); err != nil {
		return 0, fmt.Errorf("objfile: write data blob: %w", err)
	}

	for i := range sectionRecords {
		if err := struc.PackWithOptions(cw, &sectionRecords[i], opts); err != nil {
			return 0, fmt.Errorf("objfile: write section record %d: %w", i, err)
		}
	}
	for i := range symbolRecords {
		if err := struc.PackWithOptions(cw, &symbolRecords[i], opts); err != nil {
			return 0, fmt.Errorf("objfile: write symbol record %d: %w", i, err)
		}
	}
	for i := range relocRecords {
		if err := struc.PackWithOptions(cw, &relocRecords[i], opts); err != nil {
			return 0, fmt.Errorf("objfile: write relocation record %d: %w", i, err)
		}
	}
	if hasDebug {
		for i := range locRecords {
			if err := struc.PackWithOptions(cw, &locRecords[i], opts); err != nil {
				return 0, fmt.Errorf("objfile: write debug location record %d: %w", i, err)
			}
		}
		for i := range funcRecords {
			if err := struc.PackWithOptions(cw, &funcRecords[i], opts); err != nil {
				return 0, fmt.Errorf("objfile: write debug function record %d: %w", i, err)
			}
		}
		for i := range varRecords {
			if err := struc.PackWithOptions(cw, &varRecords[i], opts); err != nil {
				return 0, fmt.Errorf("objfile: write debug variable record %d: %w", i, err)
			}
		}
		for i := range typeRecords {
			if err := struc.PackWithOptions(cw, &typeRecords[i], opts); err != nil {
				return 0, fmt.Errorf("objfile: write debug type record %d: %w", i, err)
			}
		}
	}

	return int64(cw.BytesWritten()), nil
}
