package linker

import (
	"errors"
	"testing"

	"github.com/davejbax/linkcore/internal/object"
)

func TestLayout_PlacesAlignedSection(t *testing.T) {
	o := object.New("out", "amd64")
	sec := o.GetOrCreateSection(".text")
	sec.Alignment = 4
	sec.Data = make([]byte, 100)

	regions := []Region{
		{
			Name:     "flash",
			Location: 0x08000000,
			Size:     0x1000,
			Inputs: []Input{
				AlignInput{N: 16},
				SectionInput{Section: ".text"},
			},
		},
	}

	if err := layout(o, regions); err != nil {
		t.Fatalf("layout: %v", err)
	}

	if got, want := sec.Address(), uint64(0x08000000); got != want {
		t.Errorf(".text address = 0x%x, want 0x%x", got, want)
	}
	if got, want := o.Images[0].Size(), uint64(100); got != want {
		t.Errorf("image size = %d, want %d", got, want)
	}
}

func TestLayout_BoundarySymbolResolvesPastSection(t *testing.T) {
	o := object.New("out", "amd64")
	sec := o.GetOrCreateSection(".data")
	sec.Alignment = 1
	sec.Data = make([]byte, 40)

	regions := []Region{
		{
			Name:     "ram",
			Location: 0x20000000,
			Size:     0x1000,
			Inputs: []Input{
				SectionInput{Section: ".data"},
				SymbolDefInput{Symbol: "_edata"},
			},
		},
	}

	if err := layout(o, regions); err != nil {
		t.Fatalf("layout: %v", err)
	}

	value, err := o.GetSymbolValue("_edata")
	if err != nil {
		t.Fatalf("GetSymbolValue(_edata): %v", err)
	}
	if want := uint64(0x20000028); value != want {
		t.Errorf("_edata = 0x%x, want 0x%x", value, want)
	}
}

func TestLayout_OverflowingRegionFails(t *testing.T) {
	o := object.New("out", "amd64")
	sec := o.GetOrCreateSection(".text")
	sec.Alignment = 1
	sec.Data = make([]byte, 100)

	regions := []Region{
		{
			Name:     "flash",
			Location: 0,
			Size:     64,
			Inputs:   []Input{SectionInput{Section: ".text"}},
		},
	}

	err := layout(o, regions)
	var overflow *MemoryOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("layout overflow: got %v, want *MemoryOverflowError", err)
	}
	if overflow.Region != "flash" || overflow.Actual != 100 || overflow.Limit != 64 {
		t.Errorf("overflow = %+v, want region flash actual 100 limit 64", overflow)
	}
}
