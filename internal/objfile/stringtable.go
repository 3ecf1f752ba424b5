package objfile

import "bytes"

// stringTable accumulates NUL-terminated strings and hands back the byte
// offset of each, deduplicating on insert. This is the same
// length-prefixed-table-of-NUL-terminated-names shape the WUT-4 object
// format (yld) uses for its symbol names.
type stringTable struct {
	buf    bytes.Buffer
	offset map[string]uint32
}

func newStringTable() *stringTable {
	return &stringTable{offset: make(map[string]uint32)}
}

// add returns the offset of s within the table, inserting it (with a
// trailing NUL) if it hasn't been seen before.
func (t *stringTable) add(s string) uint32 {
	if off, ok := t.offset[s]; ok {
		return off
	}
	off := uint32(t.buf.Len())
	t.buf.WriteString(s)
	t.buf.WriteByte(0)
	t.offset[s] = off
	return off
}

func (t *stringTable) bytes() []byte {
	return t.buf.Bytes()
}

// stringAt reads a NUL-terminated string starting at off within data.
func stringAt(data []byte, off uint32) (string, error) {
	if int(off) >= len(data) {
		return "", errStringOffsetOutOfRange
	}
	end := int(off)
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end >= len(data) {
		return "", errUnterminatedString
	}
	return string(data[off:end]), nil
}
