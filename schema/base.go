package schema

// Base is an embeddable default for schema structs.
type Base struct{}

// String implements Schema interface
func (r Base) String() string {
	return ""
}
