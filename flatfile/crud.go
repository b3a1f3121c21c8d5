package flatfile

import "errors"

// Insert writes the key/value pair into the lowest empty slot, or appends a
// new row past the last one when no tombstone is available. Duplicate keys
// are permitted, inserting an existing key adds another row.
func (s *Store) Insert(key, value []byte) (int, error) {

	if s.sorted {
		return 0, ErrSortedMode
	}

	_, location, err := s.Scan(Natural, Forward, EmptySlot())
	if err != nil && !errors.Is(err, ErrHitEnd) {
		return 0, err
	}
	// Hitting the end of data is not a failure here: there is no tombstone
	// to reuse, so the row is appended at the end-of-data index.

	err = s.WriteRow(location, StatusOccupied, &KV{Key: key, Value: value})
	if err != nil {
		return 0, err
	}

	return 1, nil
}

// Get returns a copy of the value of the lowest-index occupied row matching
// key, or ErrNotFound.
func (s *Store) Get(key []byte) ([]byte, error) {

	if s.sorted {
		return nil, ErrSortedMode
	}

	row, _, err := s.Scan(Natural, Forward, KeyEquals(key))
	if errors.Is(err, ErrHitEnd) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// The row aliases the scan buffer, hand back a copy
	value := make([]byte, s.valueSize)
	copy(value, row.Value)

	return value, nil
}

// Update rewrites the value of every row matching key and returns how many
// rows were touched. When no row matches, Update falls back to Insert, it
// has upsert semantics and never reports not-found.
//
// A failure after the first rewrite returns the error together with the
// count of rows already mutated, nothing is rolled back.
func (s *Store) Update(key, value []byte) (int, error) {

	if s.sorted {
		return 0, ErrSortedMode
	}

	count := 0
	start := Natural

	for {
		_, location, err := s.Scan(start, Forward, KeyEquals(key))
		if errors.Is(err, ErrHitEnd) {
			break
		}
		if err != nil {
			return count, err
		}

		err = s.WriteRow(location, StatusOccupied, &KV{Key: key, Value: value})
		if err != nil {
			return count, err
		}
		count++

		// Resume one row past the match so the row just rewritten is not
		// visited again.
		start = At(location + 1)
	}

	if count == 0 {
		return s.Insert(key, value)
	}

	return count, nil
}

// Delete tombstones every row matching key and returns how many rows it
// converted. Zero matches is reported as ErrNotFound. Partial progress
// before a mid-loop failure is kept, the count reflects rows already
// tombstoned.
func (s *Store) Delete(key []byte) (int, error) {

	if s.sorted {
		return 0, ErrSortedMode
	}

	count := 0
	start := Natural

	for {
		_, location, err := s.Scan(start, Forward, KeyEquals(key))
		if errors.Is(err, ErrHitEnd) {
			break
		}
		if err != nil {
			return count, err
		}

		// Status-only write, the old key/value bytes stay in the slot until
		// an insert reuses it
		err = s.WriteRow(location, StatusEmpty, nil)
		if err != nil {
			return count, err
		}
		count++

		start = At(location + 1)
	}

	if count == 0 {
		return 0, ErrNotFound
	}

	return count, nil
}
