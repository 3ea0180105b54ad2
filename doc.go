/*
Dynamically sized bitmask (aka bit vector) with a small-object optimization:
masks of up to 64 bits live in a single inline word, larger ones own a slice
of 64-bit blocks. The representation follows the length, see Reserve and Resize.

	m, _ := soomask.New(4)     // [4]{0000}
	m.Set(3, true)             // [4]{0001}
	m.FlipRange(2, 3)          // [4]{0010}
	m.FlipRange(1, 2)          // [4]{0100}
	m.FlipRange(0, 1)          // [4]{1000}
	m.Clear()                  // [4]{0000}

Ranges are inclusive on both ends. Index and range arguments are validated
unless the mask is created WithSafetyChecks(false); operations that allocate
report ErrOutOfMemory instead of crashing.
*/
package soomask
