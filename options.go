package amt

import "math"

const (
	// DefaultRecordSize is the record size used when no RecordSize option is
	// given.
	DefaultRecordSize = 32
	// DefaultMaxSize is the largest number of records a tree accepts by default.
	DefaultMaxSize = math.MaxUint64
)

type Options struct {
	RecordSize int
	MaxSize    uint64
}

type Option func(*Options)

// RecordSize sets the fixed byte size of the records the tree accepts.
func RecordSize(size int) Option {
	if size < 1 {
		panic("record size must be positive")
	}
	return func(opts *Options) {
		opts.RecordSize = size
	}
}

// MaxSize caps the number of records. An Insert into a tree that already
// holds max records fails with ErrCounterOverflow.
func MaxSize(max uint64) Option {
	return func(opts *Options) {
		opts.MaxSize = max
	}
}
