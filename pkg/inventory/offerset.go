package inventory

// OfferSet is the ordered set of offer identifiers registered on a marketplace
// account. Identifiers keep the order they were first added in and duplicates
// are ignored. The zero value is ready to use.
type OfferSet struct {
	ids   []string
	index map[string]struct{}
}

// NewOfferSet creates a set holding ids in order.
func NewOfferSet(ids ...string) *OfferSet {
	s := &OfferSet{
		ids:   make([]string, 0, len(ids)),
		index: make(map[string]struct{}, len(ids)),
	}
	s.Add(ids...)
	return s
}

// Add appends identifiers that are not yet in the set.
// It reports how many were new.
func (s *OfferSet) Add(ids ...string) int {
	if s.index == nil {
		s.index = make(map[string]struct{}, len(ids))
	}
	added := 0
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
		added++
	}
	return added
}

// Has reports whether id is in the set.
func (s *OfferSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Len returns the number of identifiers.
func (s *OfferSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns a copy of the identifiers in insertion order.
func (s *OfferSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Clone returns an independent copy of the set.
func (s *OfferSet) Clone() *OfferSet {
	if s == nil {
		return NewOfferSet()
	}
	return NewOfferSet(s.ids...)
}
