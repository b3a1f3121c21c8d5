package flatfile

// Predicate is a pure test evaluated against each scanned row. The built-in
// predicates form a closed set, scan mechanics never depend on what a
// predicate matches. Predicates must not retain the row, its slices alias
// the scan buffer.
type Predicate interface {
	matches(s *Store, r Row) bool
}

type emptySlot struct{}

func (emptySlot) matches(_ *Store, r Row) bool {
	return r.Status == StatusEmpty
}

// EmptySlot matches any row whose slot is empty or tombstoned.
func EmptySlot() Predicate {
	return emptySlot{}
}

type keyEquals struct {
	target []byte
}

func (p keyEquals) matches(s *Store, r Row) bool {
	return r.Status == StatusOccupied && s.compare(p.target, r.Key) == 0
}

// KeyEquals matches occupied rows whose key is equal to target under the
// store's comparator.
func KeyEquals(target []byte) Predicate {
	return keyEquals{target: target}
}
