package objfile

import (
	"bytes"
	"testing"

	"github.com/davejbax/linkcore/internal/object"
)

func buildObject(t *testing.T) *object.Object {
	t.Helper()

	o := object.New("ignored-on-roundtrip", "amd64")

	text := o.GetOrCreateSection(".text")
	text.Alignment = 4
	text.Data = []byte{0xDE, 0xAD, 0xBE, 0xEF}

	data := o.GetOrCreateSection(".data")
	data.Alignment = 1
	data.Data = []byte{0x01, 0x02}

	if err := o.AddSymbol("main", 0, ".text"); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	if err := o.AddSymbol("g", 0, ".data"); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}

	o.AddRelocation("g", 2, 1, ".text")

	o.Debug.Functions = append(o.Debug.Functions, object.DebugFunction{
		Name:  "main",
		Loc:   object.SourceLoc{File: "main.c", Line: 1},
		Begin: object.Addr{Section: ".text", Offset: 0},
		End:   object.Addr{Section: ".text", Offset: 4},
	})
	o.Debug.Types = append(o.Debug.Types, object.DebugType{Name: "int", Definition: "i32"})

	return o
}

func TestWriteRead_RoundTrip(t *testing.T) {
	orig := buildObject(t)

	var buf bytes.Buffer
	n, err := Write(&buf, orig)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Write returned %d bytes, buffer holds %d", n, buf.Len())
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Arch != orig.Arch {
		t.Errorf("Arch = %q, want %q", got.Arch, orig.Arch)
	}

	text := got.Section(".text")
	if text == nil {
		t.Fatalf("roundtripped object has no .text section")
	}
	if !bytes.Equal(text.Data, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf(".text data = %v, want %v", text.Data, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	}
	if text.Alignment != 4 {
		t.Errorf(".text alignment = %d, want 4", text.Alignment)
	}

	if !got.HasSymbol("main") || !got.HasSymbol("g") {
		t.Fatalf("roundtripped object is missing symbols: has main=%v g=%v", got.HasSymbol("main"), got.HasSymbol("g"))
	}

	if len(got.Relocations) != 1 {
		t.Fatalf("roundtripped object has %d relocations, want 1", len(got.Relocations))
	}
	r := got.Relocations[0]
	if r.Sym != "g" || r.Offset != 2 || r.Type != 1 || r.Section != ".text" {
		t.Errorf("relocation = %+v, want {Sym:g Offset:2 Type:1 Section:.text}", r)
	}

	if len(got.Debug.Functions) != 1 || got.Debug.Functions[0].Name != "main" {
		t.Fatalf("roundtripped debug functions = %+v", got.Debug.Functions)
	}
	if len(got.Debug.Types) != 1 || got.Debug.Types[0].Name != "int" {
		t.Fatalf("roundtripped debug types = %+v", got.Debug.Types)
	}
}

func TestRead_RejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Write(&buf, buildObject(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	corrupt := buf.Bytes()
	corrupt[0] ^= 0xFF

	if _, err := Read(bytes.NewReader(corrupt)); err != errBadMagic {
		t.Errorf("Read with corrupt magic: got %v, want %v", err, errBadMagic)
	}
}
