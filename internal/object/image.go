package object

// Image is a placed memory region: an ordered sequence of sections that
// have all been assigned addresses within [Location, Location+Size).
type Image struct {
	Name     string
	Location uint64
	Sections []*Section
}

// AddSection appends a section to the image, preserving layout order.
func (img *Image) AddSection(s *Section) {
	img.Sections = append(img.Sections, s)
}

// Size returns the span of the image: the distance from Location to the
// end of its last-ending member section, or zero if the image is empty.
func (img *Image) Size() uint64 {
	if len(img.Sections) == 0 {
		return 0
	}
	var max uint64
	for _, s := range img.Sections {
		end := s.Address() + s.Size()
		if end > max {
			max = end
		}
	}
	if max < img.Location {
		return 0
	}
	return max - img.Location
}
