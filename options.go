package qht

// defaultSeed is an arbitrary fixed seed. Filters built without WithSeed
// behave identically across processes and runs.
const defaultSeed = 0x1234567890abcdef

// EvictionPolicy selects what Insert does when an element's bucket is
// already full.
type EvictionPolicy uint16

const (
	// EvictNone drops the element: Insert returns false and the bucket is
	// left untouched. This is the default.
	EvictNone EvictionPolicy = 0

	// EvictRandom overwrites a uniformly random slot of the full bucket.
	// The slot choice comes from a per-filter seeded generator, so it is
	// reproducible for a fixed seed.
	EvictRandom EvictionPolicy = 1

	// EvictFIFO shifts the bucket's slots down one position, discarding the
	// oldest fingerprint, and writes into the freed last slot.
	EvictFIFO EvictionPolicy = 2
)

// String returns the policy name.
func (p EvictionPolicy) String() string {
	switch p {
	case EvictNone:
		return "none"
	case EvictRandom:
		return "random"
	case EvictFIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// Option is a functional option for configuring a Filter.
type Option func(*config)

type config struct {
	seed     uint64
	algo     HashAlgorithmID
	eviction EvictionPolicy
}

func defaultConfig() *config {
	return &config{
		seed: defaultSeed,
		// algo and eviction zero values are AlgoXXH3 and EvictNone.
	}
}

// WithSeed sets the hash seed. Two filters with identical parameters and
// identical seeds place every element identically.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithHashAlgorithm selects the hash function used to split elements.
// Default is AlgoXXH3.
func WithHashAlgorithm(algo HashAlgorithmID) Option {
	return func(c *config) {
		c.algo = algo
	}
}

// WithEviction selects the bucket-overflow policy. Default is EvictNone.
func WithEviction(policy EvictionPolicy) Option {
	return func(c *config) {
		c.eviction = policy
	}
}
