package soomask

import (
	"math"

	"github.com/pkg/errors"

	"github.com/astef/soomask/internal/block"
)

// SmallBits is the largest mask that is stored inline, without allocating.
const SmallBits = block.Bits

const maxBlocks = uint(math.MaxInt) / 8

type repr uint8

const (
	reprSmall repr = iota
	reprHeap
)

// Mask is a dynamically sized bit vector. Up to SmallBits bits are kept in a
// single inline word; larger masks own a slice of 64-bit blocks.
//
// The zero value is an empty mask with safety checks enabled. A Mask is not
// safe for concurrent use. Options are not part of the stored bits: Delete
// keeps them, Init replaces them.
type Mask struct {
	repr repr
	// active when repr == reprSmall
	small uint64
	// active when repr == reprHeap, always block.Count(len) long
	blocks []uint64
	len    uint
	// significant bits in the last word, always in range [0 ; 64]
	tail uint

	unchecked bool
	maxBits   uint
}

// New returns a mask of the given length with every bit cleared.
func New(bits uint, opts ...Option) (*Mask, error) {
	m := &Mask{}
	if err := m.Init(bits, opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// NewFromWords returns a mask of 64*len(words) bits, words[0] holding bits
// 0..63.
func NewFromWords(words ...uint64) (*Mask, error) {
	m, err := New(uint(len(words)) * block.Bits)
	if err != nil {
		return nil, err
	}
	switch m.repr {
	case reprHeap:
		copy(m.blocks, words)
	default:
		if len(words) != 0 {
			m.small = words[0]
		}
	}
	return m, nil
}

// Init (re)initializes the receiver as a cleared mask of the given length.
// Previous contents are overwritten, not released: the storage is simply
// dropped. Options not passed fall back to their defaults.
func (m *Mask) Init(bits uint, opts ...Option) error {
	m.apply(opts)
	if bits <= SmallBits {
		m.setSmall(0, bits)
		return nil
	}
	blocks, err := m.alloc(bits)
	if err != nil {
		m.setSmall(0, 0)
		return err
	}
	m.setHeap(blocks, bits)
	return nil
}

// Delete releases the storage and leaves an empty inline mask behind.
// It may be called any number of times, and on a nil mask. Options are kept,
// so the mask can be reused.
func (m *Mask) Delete() {
	if m == nil {
		return
	}
	m.setSmall(0, 0)
}

// Reserve grows the mask to the given length, keeping existing bits and
// clearing the new ones. A length not above Len() leaves the mask untouched.
func (m *Mask) Reserve(bits uint) error {
	if bits <= m.len {
		return nil
	}
	return m.grow(bits)
}

// Resize sets the length of the mask, growing like Reserve or dropping every
// bit at index >= bits. Storage is reallocated to exactly fit the new length
// and the inline representation is used again once bits <= SmallBits.
// Resizing to the current length is a no-op.
func (m *Mask) Resize(bits uint) error {
	switch {
	case bits == m.len:
		return nil
	case bits > m.len:
		return m.grow(bits)
	case bits <= SmallBits:
		m.setSmall(m.first(), bits)
		return nil
	case block.Count(bits) == uint(len(m.blocks)):
		m.setHeap(m.blocks, bits)
		return nil
	}

	blocks, err := m.alloc(bits)
	if err != nil {
		return err
	}
	copy(blocks, m.blocks)
	m.setHeap(blocks, bits)
	return nil
}

// Copies every bit of src into dst, making dst the same length and
// representation as src. dst never shares storage with src afterwards.
// dst keeps its own options and is left unchanged if allocation fails.
func Copy(dst *Mask, src *Mask) error {
	if dst == src {
		return nil
	}
	switch src.repr {
	case reprHeap:
		blocks, err := dst.alloc(src.len)
		if err != nil {
			return err
		}
		copy(blocks, src.blocks)
		dst.setHeap(blocks, src.len)
	default:
		dst.setSmall(src.small, src.len)
	}
	return nil
}

// Clone returns an independent deep copy of the mask, options included.
func (m *Mask) Clone() (*Mask, error) {
	c := &Mask{unchecked: m.unchecked, maxBits: m.maxBits}
	if err := Copy(c, m); err != nil {
		return nil, err
	}
	return c, nil
}

// Move hands the contents of src over to dst without copying blocks and
// leaves src deleted. dst takes over src's options along with its storage,
// as Clone does, so the blocks it receives always fit its WithMaxBits cap.
func Move(dst *Mask, src *Mask) {
	if dst == src {
		return
	}
	dst.unchecked = src.unchecked
	dst.maxBits = src.maxBits
	dst.repr = src.repr
	dst.small = src.small
	dst.blocks = src.blocks
	dst.len = src.len
	dst.tail = src.tail
	src.Delete()
}

// Returns the length of the mask in bits.
func (m *Mask) Len() uint {
	return m.len
}

// Small reports whether the bits are stored inline.
func (m *Mask) Small() bool {
	return m.repr == reprSmall
}

// BlockCount returns the number of heap blocks backing the mask, 0 when the
// bits are stored inline.
func (m *Mask) BlockCount() uint {
	return uint(len(m.blocks))
}

// TailBits returns the number of significant bits in the last word.
func (m *Mask) TailBits() uint {
	return m.tail
}

// Valid reports whether m is non-nil and its storage matches its length.
func (m *Mask) Valid() bool {
	if m == nil {
		return false
	}
	switch m.repr {
	case reprHeap:
		return m.len > SmallBits && uint(len(m.blocks)) == block.Count(m.len)
	default:
		return m.len <= SmallBits && m.blocks == nil
	}
}

func (m *Mask) grow(bits uint) error {
	m.normalize()
	switch {
	case bits <= SmallBits:
		m.setSmall(m.small, bits)
		return nil
	case m.repr == reprHeap && block.Count(bits) == uint(len(m.blocks)):
		if err := m.checkBudget(bits); err != nil {
			return err
		}
		m.setHeap(m.blocks, bits)
		return nil
	}

	blocks, err := m.alloc(bits)
	if err != nil {
		return err
	}
	switch m.repr {
	case reprHeap:
		copy(blocks, m.blocks)
	default:
		blocks[0] = m.small
	}
	m.setHeap(blocks, bits)
	return nil
}

func (m *Mask) checkBudget(bits uint) error {
	if m.maxBits != 0 && bits > m.maxBits {
		return errors.WithMessagef(ErrOutOfMemory, "%v bits exceed the limit of %v", bits, m.maxBits)
	}
	return nil
}

func (m *Mask) alloc(bits uint) (blocks []uint64, err error) {
	if err := m.checkBudget(bits); err != nil {
		return nil, err
	}
	n := block.Count(bits)
	if n > maxBlocks {
		return nil, errors.WithMessagef(ErrOutOfMemory, "%v blocks for %v bits", n, bits)
	}
	defer func() {
		// makeslice panics instead of returning nil
		if r := recover(); r != nil {
			blocks = nil
			err = errors.WithMessagef(ErrOutOfMemory, "%v blocks for %v bits: %v", n, bits, r)
		}
	}()
	return make([]uint64, n), nil
}

func (m *Mask) setSmall(word uint64, bits uint) {
	m.repr = reprSmall
	m.small = word & block.Low(bits)
	m.blocks = nil
	m.len = bits
	m.tail = block.Tail(bits)
}

// blocks must be block.Count(bits) long
func (m *Mask) setHeap(blocks []uint64, bits uint) {
	m.repr = reprHeap
	m.small = 0
	m.blocks = blocks
	m.len = bits
	m.tail = block.Tail(bits)
	m.normalize()
}

// normalize clears the padding bits past Len() in the last word.
func (m *Mask) normalize() {
	switch m.repr {
	case reprHeap:
		m.blocks[len(m.blocks)-1] &= block.Low(m.tail)
	default:
		m.small &= block.Low(m.len)
	}
}

func (m *Mask) first() uint64 {
	switch m.repr {
	case reprHeap:
		return m.blocks[0]
	default:
		return m.small
	}
}
