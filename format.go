package soomask

import (
	"fmt"
	"io"
	"strings"

	"github.com/astef/soomask/internal/block"
)

const maxStringedBlocks = 8

// String renders the mask as [len]{bits}, bit 0 first, one space between
// 64-bit groups. Masks of more than 8 groups only show the first and the
// last 4 of them.
func (m *Mask) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%v]{", m.len))

	chunks := block.Count(m.len)
	for c := uint(0); c < chunks; c++ {
		if chunks > maxStringedBlocks && c == maxStringedBlocks/2 {
			skipped := chunks - maxStringedBlocks
			b.WriteString(fmt.Sprintf(" <more %v bits>", skipped*block.Bits))
			c += skipped - 1
			continue
		}
		if c != 0 {
			b.WriteString(" ")
		}
		m.writeChunk(&b, c, "")
	}

	b.WriteString("}")
	return b.String()
}

// Print writes every bit to w, bit 0 first, with byteSep between groups of 8
// bits and chunkSep after every 64-bit group.
func (m *Mask) Print(w io.Writer, byteSep string, chunkSep string) error {
	var b strings.Builder
	chunks := block.Count(m.len)
	for c := uint(0); c < chunks; c++ {
		b.Reset()
		m.writeChunk(&b, c, byteSep)
		b.WriteString(chunkSep)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mask) writeChunk(b *strings.Builder, chunk uint, byteSep string) {
	from := chunk * block.Bits
	to := min(from+block.Bits, m.len)
	for i := from; i < to; i++ {
		if i != from && i%8 == 0 {
			b.WriteString(byteSep)
		}
		if m.test(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
}

// Iterator walks the bits of a mask in index order.
type Iterator struct {
	m     *Mask
	index uint
}

// Returns an iterator positioned before bit 0.
// Changing the length of the mask while iterating is not supported.
func (m *Mask) Iterator() *Iterator {
	return &Iterator{m: m}
}

// Next returns the next bit and its index. ok is false once every bit has
// been visited.
func (it *Iterator) Next() (ok bool, value bool, index uint) {
	if it.index >= it.m.len {
		return false, false, it.index
	}
	index = it.index
	it.index++
	return true, it.m.test(index), index
}
