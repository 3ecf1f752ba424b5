// Package layoutdesc parses the YAML layout description file that
// tells the linker how to place sections, boundary symbols, and
// alignment gaps into memory regions. It is a thin adapter: it knows
// nothing about merging or relocating, and produces only the
// []linker.Region value the layout engine consumes.
package layoutdesc

import (
	"fmt"
	"io"

	"github.com/davejbax/linkcore/internal/linker"
	"gopkg.in/yaml.v3"
)

// file is the top-level shape of a layout description document.
type file struct {
	Regions []region `yaml:"regions"`
}

type region struct {
	Name     string  `yaml:"name"`
	Location uint64  `yaml:"location"`
	Size     uint64  `yaml:"size"`
	Inputs   []input `yaml:"inputs"`
}

// input is one entry of a region's placement list. Exactly one of its
// fields may be set; which one determines the linker.Input kind it
// decodes to.
type input struct {
	Section         string `yaml:"section"`
	SymbolDefinition string `yaml:"symbol_definition"`
	Align           uint64 `yaml:"align"`
}

var (
	errAmbiguousInput = fmt.Errorf("layoutdesc: input entry must set exactly one of section, symbol_definition, or align")
	errEmptyInput     = fmt.Errorf("layoutdesc: input entry sets none of section, symbol_definition, or align")
)

func (in input) toLinkerInput() (linker.Input, error) {
	set := 0
	if in.Section != "" {
		set++
	}
	if in.SymbolDefinition != "" {
		set++
	}
	if in.Align != 0 {
		set++
	}

	switch {
	case set == 0:
		return nil, errEmptyInput
	case set > 1:
		return nil, errAmbiguousInput
	case in.Section != "":
		return linker.SectionInput{Section: in.Section}, nil
	case in.SymbolDefinition != "":
		return linker.SymbolDefInput{Symbol: in.SymbolDefinition}, nil
	default:
		return linker.AlignInput{N: in.Align}, nil
	}
}

// Parse reads a layout description document from r and returns the
// regions it describes, in document order.
func Parse(r io.Reader) ([]linker.Region, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("layoutdesc: decode: %w", err)
	}

	regions := make([]linker.Region, len(f.Regions))
	for i, rg := range f.Regions {
		inputs := make([]linker.Input, len(rg.Inputs))
		for j, in := range rg.Inputs {
			li, err := in.toLinkerInput()
			if err != nil {
				return nil, fmt.Errorf("layoutdesc: region %q input %d: %w", rg.Name, j, err)
			}
			inputs[j] = li
		}

		regions[i] = linker.Region{
			Name:     rg.Name,
			Location: rg.Location,
			Size:     rg.Size,
			Inputs:   inputs,
		}
	}

	return regions, nil
}
