package linker

import (
	"log/slog"

	"github.com/davejbax/linkcore/internal/object"
)

// merge concatenates every input object's sections into dst, rewriting
// symbol and relocation offsets as it goes, and (if debug) rewriting
// debug record addresses. Each input object gets its own offsets table,
// scoped to that single pass and discarded afterward.
func merge(inputs []*object.Object, dst *object.Object, debug bool) error {
	for _, in := range inputs {
		offsets := make(map[string]uint64, len(in.Sections()))

		for _, src := range in.Sections() {
			out := dst.GetOrCreateSection(src.Name)

			if src.Alignment > out.Alignment {
				out.Alignment = src.Alignment
			}

			offsets[src.Name] = padAndAppend(out, src.Data, src.Alignment)

			slog.Debug("merged section",
				"object", in.Name,
				"section", src.Name,
				"offset", offsets[src.Name],
			)
		}

		for _, sym := range in.Symbols() {
			off, ok := offsets[sym.Section]
			if !ok {
				return &MalformedInputError{Object: in.Name, Section: sym.Section}
			}
			if err := dst.AddSymbol(sym.Name, off+sym.Value, sym.Section); err != nil {
				return err
			}
		}

		for _, reloc := range in.Relocations {
			off, ok := offsets[reloc.Section]
			if !ok {
				return &MalformedInputError{Object: in.Name, Section: reloc.Section}
			}
			dst.AddRelocation(reloc.Sym, off+reloc.Offset, reloc.Type, reloc.Section)
		}

		if debug {
			adj := func(a object.Addr) (object.Addr, error) {
				off, ok := offsets[a.Section]
				if !ok {
					return object.Addr{}, &MalformedInputError{Object: in.Name, Section: a.Section}
				}
				return object.Addr{Section: a.Section, Offset: off + a.Offset}, nil
			}

			for _, loc := range in.Debug.Locations {
				addr, err := adj(loc.Address)
				if err != nil {
					return err
				}
				dst.Debug.Locations = append(dst.Debug.Locations, object.DebugLocation{
					Loc:     loc.Loc,
					Address: addr,
				})
			}
			for _, fn := range in.Debug.Functions {
				begin, err := adj(fn.Begin)
				if err != nil {
					return err
				}
				end, err := adj(fn.End)
				if err != nil {
					return err
				}
				dst.Debug.Functions = append(dst.Debug.Functions, object.DebugFunction{
					Name:  fn.Name,
					Loc:   fn.Loc,
					Begin: begin,
					End:   end,
				})
			}
			for _, v := range in.Debug.Variables {
				addr, err := adj(v.Address)
				if err != nil {
					return err
				}
				dst.Debug.Variables = append(dst.Debug.Variables, object.DebugVariable{
					Name:    v.Name,
					Type:    v.Type,
					Loc:     v.Loc,
					Address: addr,
				})
			}
			// Debug types carry no address and are copied verbatim.
			dst.Debug.Types = append(dst.Debug.Types, in.Debug.Types...)
		}
	}

	dst.State = object.StateMerged
	return nil
}

// padAndAppend pre-pads out with zero bytes until it is align-aligned,
// then appends data, returning the offset at which data was written.
func padAndAppend(out *object.Section, data []byte, align uint64) uint64 {
	if align > 0 {
		for out.Size()%align != 0 {
			out.Data = append(out.Data, 0)
		}
	}
	offset := out.Size()
	out.Data = append(out.Data, data...)
	return offset
}
