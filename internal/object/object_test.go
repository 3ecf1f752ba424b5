package object

import (
	"errors"
	"testing"
)

func TestGetOrCreateSection_CreatesOnce(t *testing.T) {
	o := New("test", "amd64")

	a := o.GetOrCreateSection(".text")
	b := o.GetOrCreateSection(".text")

	if a != b {
		t.Errorf("GetOrCreateSection returned different sections for the same name")
	}
	if !o.HasSection(".text") {
		t.Errorf("HasSection(.text) = false, want true")
	}
}

func TestSections_PreservesCreationOrder(t *testing.T) {
	o := New("test", "amd64")
	o.GetOrCreateSection(".text")
	o.GetOrCreateSection(".data")
	o.GetOrCreateSection(".bss")

	var names []string
	for _, s := range o.Sections() {
		names = append(names, s.Name)
	}

	want := []string{".text", ".data", ".bss"}
	if len(names) != len(want) {
		t.Fatalf("got %d sections, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Sections()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestAddSymbol_DuplicateFails(t *testing.T) {
	o := New("test", "amd64")
	o.GetOrCreateSection(".text")

	if err := o.AddSymbol("main", 0, ".text"); err != nil {
		t.Fatalf("unexpected error on first AddSymbol: %v", err)
	}

	err := o.AddSymbol("main", 4, ".text")
	var dup *DuplicateSymbolError
	if !errors.As(err, &dup) {
		t.Fatalf("AddSymbol duplicate: got %v, want *DuplicateSymbolError", err)
	}
	if dup.Name != "main" {
		t.Errorf("DuplicateSymbolError.Name = %q, want %q", dup.Name, "main")
	}
}

func TestGetSymbolValue_UndefinedReference(t *testing.T) {
	o := New("test", "amd64")

	_, err := o.GetSymbolValue("nope")
	var undef *UndefinedReferenceError
	if !errors.As(err, &undef) {
		t.Fatalf("GetSymbolValue undefined: got %v, want *UndefinedReferenceError", err)
	}
}

func TestGetSymbolValue_NotLaidOut(t *testing.T) {
	o := New("test", "amd64")
	o.GetOrCreateSection(".text")
	if err := o.AddSymbol("main", 0, ".text"); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}

	_, err := o.GetSymbolValue("main")
	var notLaidOut *NotLaidOutError
	if !errors.As(err, &notLaidOut) {
		t.Fatalf("GetSymbolValue before layout: got %v, want *NotLaidOutError", err)
	}
}

func TestGetSymbolValue_ResolvesAfterLayout(t *testing.T) {
	o := New("test", "amd64")
	sec := o.GetOrCreateSection(".text")
	sec.Alignment = 1
	sec.Data = []byte{0, 0, 0, 0}
	sec.SetAddress(0x1000)

	if err := o.AddSymbol("main", 2, ".text"); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}

	value, err := o.GetSymbolValue("main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 0x1002 {
		t.Errorf("GetSymbolValue = 0x%x, want 0x%x", value, 0x1002)
	}
}

func TestPolish_ClearsRelocationsOnly(t *testing.T) {
	o := New("test", "amd64")
	o.GetOrCreateSection(".text")
	if err := o.AddSymbol("local", 0, ".text"); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	o.AddRelocation("local", 0, 1, ".text")

	o.Polish()

	if len(o.Relocations) != 0 {
		t.Errorf("Polish left %d relocations, want 0", len(o.Relocations))
	}
	if !o.HasSymbol("local") {
		t.Errorf("Polish removed local symbol, want it kept")
	}
	if o.State != StatePolished {
		t.Errorf("State = %v, want %v", o.State, StatePolished)
	}
}

func TestSectionSetAddress_RejectsMisalignedAddress(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("SetAddress with misaligned address did not panic")
		}
	}()

	s := &Section{Name: ".text", Alignment: 16}
	s.SetAddress(4)
}

func TestImageSize_SpansToLastSectionEnd(t *testing.T) {
	text := &Section{Name: ".text", Data: make([]byte, 16), Alignment: 1}
	text.SetAddress(0x1000)
	data := &Section{Name: ".data", Data: make([]byte, 8), Alignment: 1}
	data.SetAddress(0x1010)

	img := &Image{Name: "flash", Location: 0x1000}
	img.AddSection(text)
	img.AddSection(data)

	if got, want := img.Size(), uint64(0x18); got != want {
		t.Errorf("Image.Size() = 0x%x, want 0x%x", got, want)
	}
}
