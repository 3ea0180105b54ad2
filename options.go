package soomask

type options struct {
	unchecked bool
	maxBits   uint
}

// Option configures a Mask at construction time.
type Option func(*options)

// WithSafetyChecks turns index and range validation on (the default) or off.
//
// With checks off, operations trust their arguments: no error is returned
// for a bad index and an index past the last block panics with the runtime's
// own slice bounds error, while one past Len() inside the last block silently
// touches padding.
func WithSafetyChecks(enabled bool) Option {
	return func(o *options) {
		o.unchecked = !enabled
	}
}

// WithMaxBits caps the length of heap-backed masks: creating, growing or
// copying into one longer than the cap fails with ErrOutOfMemory. Inline
// masks never allocate and are not affected. Zero means no cap.
func WithMaxBits(bits uint) Option {
	return func(o *options) {
		o.maxBits = bits
	}
}

func (m *Mask) apply(opts []Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	m.unchecked = o.unchecked
	m.maxBits = o.maxBits
}

// SafetyChecks reports whether index and range validation is active.
func (m *Mask) SafetyChecks() bool {
	return !m.unchecked
}
