package linker

import (
	"fmt"
	"log/slog"

	"github.com/davejbax/linkcore/internal/align"
	"github.com/davejbax/linkcore/internal/object"
)

// Input is one entry of a memory region's placement list. It is a
// closed, tagged variant over SectionInput, SymbolDefInput, and
// AlignInput: only types in this package can implement it, and layout()
// panics on any kind its type switch does not handle.
type Input interface {
	isInput()
}

// SectionInput places an existing (or not-yet-created) destination
// section at the region's current cursor.
type SectionInput struct {
	Section string
}

// SymbolDefInput synthesizes a zero-sized boundary section at the
// region's current cursor and defines Symbol at offset 0 within it.
type SymbolDefInput struct {
	Symbol string
}

// AlignInput advances the region's cursor to the next multiple of N
// without placing any section.
type AlignInput struct {
	N uint64
}

func (SectionInput) isInput()   {}
func (SymbolDefInput) isInput() {}
func (AlignInput) isInput()     {}

// Region is a memory region: a base address, a maximum byte span, and
// an ordered placement list.
type Region struct {
	Name     string
	Location uint64
	Size     uint64
	Inputs   []Input
}

// layout interprets regions against dst, assigning addresses to placed
// sections, synthesizing boundary symbols, and appending one Image per
// region. It fails with MemoryOverflowError if a region's placed
// contents exceed its declared size, or with a *object.DuplicateSectionError
// if a boundary symbol's synthesized section name collides with an
// existing one.
func layout(dst *object.Object, regions []Region) error {
	for _, region := range regions {
		img := &object.Image{Name: region.Name, Location: region.Location}
		cursor := region.Location

		for _, input := range region.Inputs {
			switch in := input.(type) {
			case SectionInput:
				sec := dst.GetOrCreateSection(in.Section)
				if sec.Alignment > 0 {
					cursor = align.Address(cursor, sec.Alignment)
				}
				sec.SetAddress(cursor)
				cursor += sec.Size()
				img.AddSection(sec)

				slog.Debug("placed section",
					"region", region.Name,
					"section", sec.Name,
					"address", sec.Address(),
					"size", sec.Size(),
				)

			case SymbolDefInput:
				name := fmt.Sprintf("_$%s_", in.Symbol)
				if dst.HasSection(name) {
					return &object.DuplicateSectionError{Name: name}
				}
				sec := dst.GetOrCreateSection(name)
				sec.Alignment = 1
				sec.SetAddress(cursor)
				if err := dst.AddSymbol(in.Symbol, 0, name); err != nil {
					return err
				}
				img.AddSection(sec)

				slog.Debug("defined boundary symbol",
					"region", region.Name,
					"symbol", in.Symbol,
					"address", sec.Address(),
				)

			case AlignInput:
				cursor = align.Address(cursor, in.N)

			default:
				panic(fmt.Sprintf("linker: unhandled layout input type %T", input))
			}
		}

		size := cursor - region.Location
		if size > region.Size {
			return &MemoryOverflowError{Region: region.Name, Actual: size, Limit: region.Size}
		}

		dst.AddImage(img)
	}

	dst.State = object.StateLaidOut
	return nil
}
