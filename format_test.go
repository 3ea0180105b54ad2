package soomask

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := map[string]struct {
		n        uint
		set      []uint
		expected string
	}{
		"empty":      {0, nil, "[0]{}"},
		"one":        {1, []uint{0}, "[1]{1}"},
		"first_last": {5, []uint{0, 4}, "[5]{10001}"},
		"full_word":  {64, []uint{1, 2}, "[64]{0110" + zeros(60) + "}"},
		"two_words":  {66, []uint{63, 64}, "[66]{" + zeros(63) + "1 10}"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := New(tc.n)
			require.NoError(t, err)
			for _, i := range tc.set {
				require.NoError(t, m.Set(i, true))
			}

			assert.Equal(t, tc.expected, m.String())
		})
	}
}

func TestStringSkips(t *testing.T) {
	tests := map[string]struct {
		n        uint
		expected string
	}{
		"512_not_skipped": {512, "[512]{" + zerosWords(8) + "}"},
		"513":             {513, "[513]{" + zerosWords(4) + " <more 64 bits> " + zerosWords(3) + " 0}"},
		"576":             {576, "[576]{" + zerosWords(4) + " <more 64 bits> " + zerosWords(4) + "}"},
		"640":             {640, "[640]{" + zerosWords(4) + " <more 128 bits> " + zerosWords(4) + "}"},
		"641":             {641, "[641]{" + zerosWords(4) + " <more 192 bits> " + zerosWords(3) + " 0}"},
		"639":             {639, "[639]{" + zerosWords(4) + " <more 128 bits> " + zerosWords(3) + " " + zeros(63) + "}"},
		"960":             {960, "[960]{" + zerosWords(4) + " <more 448 bits> " + zerosWords(4) + "}"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := New(tc.n)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, m.String())
		})
	}
}

func TestPrint(t *testing.T) {
	tests := map[string]struct {
		n                 uint
		set               []uint
		byteSep, chunkSep string
		expected          string
	}{
		"empty":      {0, nil, " ", "\n", ""},
		"partial":    {10, []uint{0, 9}, "_", "\n", "10000000_01\n"},
		"exact_byte": {8, []uint{7}, "_", "|", "00000001|"},
		"no_seps":    {12, []uint{3, 11}, "", "", "000100000001"},
		"two_chunks": {70, []uint{0, 64, 69}, ".", "\n", "10000000" + strings.Repeat(".00000000", 7) + "\n100001\n"},
		"high_byte":  {16, []uint{8, 9, 10, 11, 12, 13, 14, 15}, " ", ";", "00000000 11111111;"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := New(tc.n)
			require.NoError(t, err)
			for _, i := range tc.set {
				require.NoError(t, m.Set(i, true))
			}
			var out bytes.Buffer

			require.NoError(t, m.Print(&out, tc.byteSep, tc.chunkSep))

			assert.Equal(t, tc.expected, out.String())
		})
	}
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

func TestPrintWriteError(t *testing.T) {
	m, err := New(100)
	require.NoError(t, err)

	err = m.Print(failingWriter{}, " ", "\n")

	assert.ErrorIs(t, err, errWriteFailed)
}

func TestIterator(t *testing.T) {
	m, err := New(66)
	require.NoError(t, err)
	require.NoError(t, m.FillRange(62, 63))

	it := m.Iterator()

	for i := uint(0); i < 66; i++ {
		ok, value, index := it.Next()
		assert.Equal(t, i, index)
		assert.Equal(t, true, ok)
		assert.Equal(t, i == 62 || i == 63, value)
	}
	ok, _, _ := it.Next()
	assert.Equal(t, false, ok)
}

func TestIteratorEmpty(t *testing.T) {
	it := (&Mask{}).Iterator()

	ok, _, _ := it.Next()

	assert.False(t, ok)
}

func TestDocExample(t *testing.T) {
	// [4]{0000}
	m, err := New(4)
	require.NoError(t, err)

	// [4]{0001}
	require.NoError(t, m.Set(3, true))

	// [4]{0010}
	require.NoError(t, m.FlipRange(2, 3))

	// [4]{0100}
	require.NoError(t, m.FlipRange(1, 2))

	// [4]{1000}
	require.NoError(t, m.FlipRange(0, 1))
	assert.Equal(t, "[4]{1000}", m.String())

	m.Clear()
	assert.Equal(t, "[4]{0000}", m.String())
}

func zeros(n uint) string {
	return fmt.Sprintf("%0"+fmt.Sprint(n)+"b", 0)
}

func zerosWords(n uint) string {
	var b strings.Builder
	for i := uint(0); i < n; i++ {
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(zeros(64))
	}
	return b.String()
}
