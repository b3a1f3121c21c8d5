package flatfile

import (
	"errors"
	"fmt"
	"io"
)

// Direction selects which way a scan walks the file.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Start is where a scan begins. The zero value means the natural start for
// the direction: row 0 scanning forward, just past the last row scanning
// backward. Use At for an explicit row index.
type Start struct {
	index    int64
	explicit bool
}

// At starts a scan at an explicit row index.
func At(index int64) Start {
	return Start{index: index, explicit: true}
}

// Natural is the default start for the scan direction.
var Natural = Start{}

// Scan walks the file from start in the given direction, reading batches of
// up to BufferRows rows into the store's buffer and evaluating the predicate
// against each row. Rows inside a batch are always evaluated in ascending
// file order, only the batch selection moves backward.
//
// On the first match Scan returns the row and its index and stops
// immediately. If the scan boundary is reached with no match, Scan returns
// ErrHitEnd together with the total row count (one past the last valid row).
// The returned row aliases the scan buffer and is invalidated by the next
// operation on the store.
//
// Each call probes the end of file again, nothing is cached between calls.
func (s *Store) Scan(start Start, direction Direction, predicate Predicate) (Row, int64, error) {

	info, err := s.file.Stat()
	if err != nil {
		return Row{}, 0, fmt.Errorf("stat data file: %w", err)
	}
	eofPos := info.Size()

	curOffset := s.startOfData
	if direction == Backward {
		curOffset = eofPos
	}
	if start.explicit {
		curOffset = s.rowOffset(start.index)
	}

	endOffset := eofPos
	if direction == Backward {
		endOffset = s.startOfData
	}

	if curOffset > eofPos || curOffset < s.startOfData {
		return Row{}, 0, ErrOutOfRange
	}

	for curOffset != endOffset {

		batchBase := curOffset
		batchRows := s.bufferRows

		if direction == Forward {
			n, err := s.file.ReadAt(s.buffer, curOffset)
			if err != nil && !errors.Is(err, io.EOF) {
				return Row{}, 0, fmt.Errorf("read row batch at offset %d: %w", curOffset, err)
			}
			// A partial batch near the end of file is fine, reading no
			// complete row before the boundary is not.
			batchRows = n / s.rowSize
			if batchRows == 0 {
				return Row{}, 0, ErrIncompleteRead
			}
			curOffset += int64(batchRows * s.rowSize)
		} else {
			batchBase = curOffset - int64(s.bufferRows*s.rowSize)
			if batchBase < s.startOfData {
				// Clamp the batch at the start of data and shrink it by the
				// rows that would fall before row 0.
				batchRows = s.bufferRows - int((s.startOfData-batchBase)/int64(s.rowSize))
				batchBase = s.startOfData
			}
			if _, err := s.file.ReadAt(s.buffer[:batchRows*s.rowSize], batchBase); err != nil {
				return Row{}, 0, fmt.Errorf("read row batch at offset %d: %w", batchBase, ErrIncompleteRead)
			}
			curOffset = batchBase
		}

		for i := 0; i < batchRows; i++ {
			row := s.rowAt(i)
			if predicate.matches(s, row) {
				index := (batchBase-s.startOfData)/int64(s.rowSize) + int64(i)
				return row, index, nil
			}
		}
	}

	return Row{}, (eofPos - s.startOfData) / int64(s.rowSize), ErrHitEnd
}
