// Package linker implements the merge -> layout -> relocate control flow
// that turns a set of relocatable objects into either another
// relocatable object (partial link) or a placed, relocated image.
package linker

import (
	"fmt"

	"github.com/davejbax/linkcore/internal/arch"
	"github.com/davejbax/linkcore/internal/object"
)

// Options controls how Link treats its output.
type Options struct {
	// PartialLink, if true, leaves unresolved relocations in the output
	// instead of failing on them, so the result can be fed into a later
	// final link.
	PartialLink bool
	// Debug, if true, carries debug records through the merge.
	Debug bool
}

// Link merges inputs, places sections per regions, and — unless
// opts.PartialLink — resolves every relocation. It asserts every input
// shares a's architecture, failing with ArchitectureMismatchError
// otherwise.
func Link(a *arch.Arch, inputs []*object.Object, regions []Region, opts Options, reporter Reporter) (*object.Object, error) {
	if reporter == nil {
		reporter = NopReporter{}
	}

	reporter.Heading(2, "Linking")

	for _, in := range inputs {
		if in.Arch != a.Name {
			return nil, &ArchitectureMismatchError{Expected: a.Name, Actual: in.Arch}
		}
	}

	dst := object.New("", a.Name)

	if err := merge(inputs, dst, opts.Debug); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	if err := layout(dst, regions); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	if !opts.PartialLink {
		if err := relocate(dst, a); err != nil {
			return nil, fmt.Errorf("relocate: %w", err)
		}
	}

	for _, s := range dst.Sections() {
		if s.HasAddress() {
			reporter.Message(fmt.Sprintf("section %s at 0x%x", s.Name, s.Address()))
		}
	}
	for _, img := range dst.Images {
		reporter.Message(fmt.Sprintf("image %s at 0x%x", img.Name, img.Location))
	}

	if opts.PartialLink {
		dst.State = object.StatePartiallyLinked
	} else {
		dst.Polish()
	}

	reporter.Message("linking complete")

	return dst, nil
}
