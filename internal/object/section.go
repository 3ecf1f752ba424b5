package object

import (
	"bytes"
	"io"

	"github.com/davejbax/linkcore/internal/iometa"
)

// Section is a named, growable byte buffer. Address is only meaningful
// once the layout engine has placed the section into a memory region;
// until then HasAddress reports false.
type Section struct {
	Name      string
	Data      []byte
	Alignment uint64

	address    uint64
	hasAddress bool
}

// Size returns the number of bytes currently held by the section.
func (s *Section) Size() uint64 {
	return uint64(len(s.Data))
}

// Open returns a streaming view of the section's current contents, the
// way a PE section hands its payload to whatever is serializing the
// image.
func (s *Section) Open() io.ReadCloser {
	return &iometa.Closifier{Reader: bytes.NewReader(s.Data)}
}

// Address returns the section's absolute base address. It panics if the
// section has not yet been placed by the layout engine; callers that
// aren't sure should check HasAddress first.
func (s *Section) Address() uint64 {
	if !s.hasAddress {
		panic("object: section " + s.Name + " has no address yet")
	}
	return s.address
}

// HasAddress reports whether the layout engine has assigned this
// section an address.
func (s *Section) HasAddress() bool {
	return s.hasAddress
}

// SetAddress assigns the section's absolute base address. addr must be a
// multiple of the section's alignment.
func (s *Section) SetAddress(addr uint64) {
	if s.Alignment > 0 && addr%s.Alignment != 0 {
		panic("object: address is not a multiple of section alignment")
	}
	s.address = addr
	s.hasAddress = true
}
