package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates 64-bit time-ordered numeric identifiers.
type NumberID interface {
	Generate() int64
}
