package soomask

import (
	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange is returned when a bit index or a range bound is not
	// below Len().
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidRange is returned by range operations when start > end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfMemory is returned by operations that allocate blocks (New,
	// Init, Reserve, Resize, Copy, Clone) when the allocation cannot be
	// satisfied or exceeds the WithMaxBits budget.
	ErrOutOfMemory = errors.New("out of memory")
)

func (m *Mask) checkIndex(op string, index uint) error {
	if m.unchecked || index < m.len {
		return nil
	}
	return errors.WithMessagef(ErrIndexOutOfRange, "%s [%v] with length %v", op, index, m.len)
}

func (m *Mask) checkRange(op string, start uint, end uint) error {
	if m.unchecked {
		return nil
	}
	if start > end {
		return errors.WithMessagef(ErrInvalidRange, "%s [%v:%v]", op, start, end)
	}
	if end >= m.len {
		return errors.WithMessagef(ErrIndexOutOfRange, "%s [%v:%v] with length %v", op, start, end, m.len)
	}
	return nil
}
