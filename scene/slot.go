package scene

// slot holds at most one live renderable.
type slot struct {
	r *Renderable
}

// take empties the slot and returns what it held, or nil.
func (s *slot) take() *Renderable {
	r := s.r
	s.r = nil
	return r
}

// put installs r. The slot must be empty.
func (s *slot) put(r *Renderable) {
	if s.r != nil {
		panic("scene: installing into an occupied slot")
	}
	s.r = r
}

func (s *slot) peek() *Renderable {
	return s.r
}
