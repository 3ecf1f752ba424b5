package objfile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/davejbax/linkcore/internal/object"
	"github.com/lunixbochs/struc"
)

// Read deserializes an Object previously written by Write. The returned
// object has no section addresses and no images: those are products of
// layout, which this format does not carry.
func Read(r io.Reader) (*object.Object, error) {
	opts := &struc.Options{Order: binary.LittleEndian}

	var h header
	if err := struc.UnpackWithOptions(r, &h, opts); err != nil {
		return nil, fmt.Errorf("objfile: read header: %w", err)
	}
	if h.Magic != magic {
		return nil, errBadMagic
	}
	if h.Version != version {
		return nil, errUnsupportedVersion
	}

	strs := make([]byte, h.StringTableSize)
	if _, err := io.ReadFull(r, strs); err != nil {
		return nil, fmt.Errorf("objfile: read string table: %w", err)
	}

	data := make([]byte, h.DataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("objfile: read data blob: %w", err)
	}

	name := func(off uint32) (string, error) { return stringAt(strs, off) }

	arch, err := name(h.ArchNameOffset)
	if err != nil {
		return nil, fmt.Errorf("objfile: resolve arch name: %w", err)
	}

	obj := object.New("", arch)

	for i := uint32(0); i < h.SectionCount; i++ {
		var rec sectionRecord
		if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
			return nil, fmt.Errorf("objfile: read section record %d: %w", i, err)
		}
		secName, err := name(rec.NameOffset)
		if err != nil {
			return nil, fmt.Errorf("objfile: resolve section %d name: %w", i, err)
		}
		end := uint64(rec.DataOffset) + uint64(rec.DataSize)
		if end > uint64(len(data)) {
			return nil, errSectionIndexOutOfRange
		}
		sec := obj.GetOrCreateSection(secName)
		sec.Alignment = uint64(rec.Alignment)
		sec.Data = append([]byte(nil), data[rec.DataOffset:end]...)
	}

	for i := uint32(0); i < h.SymbolCount; i++ {
		var rec symbolRecord
		if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
			return nil, fmt.Errorf("objfile: read symbol record %d: %w", i, err)
		}
		symName, err := name(rec.NameOffset)
		if err != nil {
			return nil, fmt.Errorf("objfile: resolve symbol %d name: %w", i, err)
		}
		secName, err := name(rec.SectionNameOffset)
		if err != nil {
			return nil, fmt.Errorf("objfile: resolve symbol %d section: %w", i, err)
		}
		if err := obj.AddSymbol(symName, rec.Value, secName); err != nil {
			return nil, fmt.Errorf("objfile: add symbol %d: %w", i, err)
		}
	}

	for i := uint32(0); i < h.RelocationCount; i++ {
		var rec relocationRecord
		if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
			return nil, fmt.Errorf("objfile: read relocation record %d: %w", i, err)
		}
		symName, err := name(rec.SymNameOffset)
		if err != nil {
			return nil, fmt.Errorf("objfile: resolve relocation %d symbol: %w", i, err)
		}
		secName, err := name(rec.SectionNameOffset)
		if err != nil {
			return nil, fmt.Errorf("objfile: resolve relocation %d section: %w", i, err)
		}
		obj.AddRelocation(symName, rec.Offset, rec.Type, secName)
	}

	if h.Flags&flagHasDebug != 0 {
		for i := uint32(0); i < h.DebugLocCount; i++ {
			var rec debugLocationRecord
			if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
				return nil, fmt.Errorf("objfile: read debug location record %d: %w", i, err)
			}
			file, err := name(rec.LocFileOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug location %d file: %w", i, err)
			}
			sec, err := name(rec.AddrSectionNameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug location %d section: %w", i, err)
			}
			obj.Debug.Locations = append(obj.Debug.Locations, object.DebugLocation{
				Loc:     object.SourceLoc{File: file, Line: int(rec.LocLine)},
				Address: object.Addr{Section: sec, Offset: rec.AddrOffset},
			})
		}

		for i := uint32(0); i < h.DebugFuncCount; i++ {
			var rec debugFunctionRecord
			if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
				return nil, fmt.Errorf("objfile: read debug function record %d: %w", i, err)
			}
			fname, err := name(rec.NameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug function %d name: %w", i, err)
			}
			file, err := name(rec.LocFileOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug function %d file: %w", i, err)
			}
			beginSec, err := name(rec.BeginSectionNameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug function %d begin section: %w", i, err)
			}
			endSec, err := name(rec.EndSectionNameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug function %d end section: %w", i, err)
			}
			obj.Debug.Functions = append(obj.Debug.Functions, object.DebugFunction{
				Name:  fname,
				Loc:   object.SourceLoc{File: file, Line: int(rec.LocLine)},
				Begin: object.Addr{Section: beginSec, Offset: rec.BeginOffset},
				End:   object.Addr{Section: endSec, Offset: rec.EndOffset},
			})
		}

		for i := uint32(0); i < h.DebugVarCount; i++ {
			var rec debugVariableRecord
			if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
				return nil, fmt.Errorf("objfile: read debug variable record %d: %w", i, err)
			}
			vname, err := name(rec.NameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug variable %d name: %w", i, err)
			}
			typ, err := name(rec.TypeOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug variable %d type: %w", i, err)
			}
			file, err := name(rec.LocFileOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug variable %d file: %w", i, err)
			}
			sec, err := name(rec.AddrSectionNameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug variable %d section: %w", i, err)
			}
			obj.Debug.Variables = append(obj.Debug.Variables, object.DebugVariable{
				Name:    vname,
				Type:    typ,
				Loc:     object.SourceLoc{File: file, Line: int(rec.LocLine)},
				Address: object.Addr{Section: sec, Offset: rec.AddrOffset},
			})
		}

		for i := uint32(0); i < h.DebugTypeCount; i++ {
			var rec debugTypeRecord
			if err := struc.UnpackWithOptions(r, &rec, opts); err != nil {
				return nil, fmt.Errorf("objfile: read debug type record %d: %w", i, err)
			}
			tname, err := name(rec.NameOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug type %d name: %w", i, err)
			}
			def, err := name(rec.DefinitionOffset)
			if err != nil {
				return nil, fmt.Errorf("objfile: resolve debug type %d definition: %w", i, err)
			}
			obj.Debug.Types = append(obj.Debug.Types, object.DebugType{Name: tname, Definition: def})
		}
	}

	obj.State = object.StateMerged

	return obj, nil
}
