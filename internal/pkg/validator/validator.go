package validator

// Validator checks a struct's fields against its validate tags.
type Validator interface {
	// Validate returns nil when data satisfies every constraint, or an error
	// describing the failing fields.
	Validate(data any) error
}

var _ Validator = (*V10Validator)(nil)
