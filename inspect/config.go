package inspect

// Config holds the tunables of an Inspector.
type Config struct {
	// DefaultConvention is shown for procedure signatures whose calling
	// convention is not recorded in the type metadata.
	DefaultConvention string

	// ChunkSize is the largest number of slice elements exposed directly as
	// children. Longer slices are grouped into sub-arrays of ChunkSize elements.
	ChunkSize int

	// SummaryMaxLen caps the length of aggregate summaries in characters.
	SummaryMaxLen int

	// MaxStringLen is the longest string that is read from the target.
	MaxStringLen int

	// MaxDepth bounds summary recursion through nested values and pointers.
	MaxDepth int
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		DefaultConvention: "c",
		ChunkSize:         1000,
		SummaryMaxLen:     50,
		MaxStringLen:      1 << 30,
		MaxDepth:          8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultConvention == "" {
		c.DefaultConvention = d.DefaultConvention
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = d.ChunkSize
	}
	if c.SummaryMaxLen <= 0 {
		c.SummaryMaxLen = d.SummaryMaxLen
	}
	if c.MaxStringLen <= 0 {
		c.MaxStringLen = d.MaxStringLen
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	return c
}
