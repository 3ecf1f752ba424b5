package linker

import (
	"fmt"
	"log/slog"

	"github.com/davejbax/linkcore/internal/arch"
	"github.com/davejbax/linkcore/internal/object"
)

// relocate resolves every relocation in dst, in emission order,
// dispatching each to a's patch function for its type. No relocation is
// skipped or reordered.
func relocate(dst *object.Object, a *arch.Arch) error {
	for _, reloc := range dst.Relocations {
		if !dst.HasSymbol(reloc.Sym) {
			return &object.UndefinedReferenceError{Symbol: reloc.Sym}
		}

		symValue, err := dst.GetSymbolValue(reloc.Sym)
		if err != nil {
			return err
		}

		section := dst.Section(reloc.Section)
		if section == nil {
			return &MalformedInputError{Object: dst.Name, Section: reloc.Section}
		}

		siteAddress := section.Address() + reloc.Offset

		patch, err := a.GetReloc(arch.RelocType(reloc.Type))
		if err != nil {
			return err
		}

		if reloc.Offset > section.Size() {
			return fmt.Errorf("relocation at %s+0x%x is outside section bounds", reloc.Section, reloc.Offset)
		}

		if err := patch(symValue, section.Data[reloc.Offset:], siteAddress); err != nil {
			return fmt.Errorf("relocating %s+0x%x (sym %q): %w", reloc.Section, reloc.Offset, reloc.Sym, err)
		}

		slog.Debug("applied relocation",
			"section", reloc.Section,
			"offset", reloc.Offset,
			"type", reloc.Type,
			"sym", reloc.Sym,
			"value", symValue,
		)
	}

	return nil
}
