package schema

import "encoding/json"

// Schema is the contract for payloads exchanged with a language model.
// Structured schemas are serialized to JSON, plain text passes through as-is.
type Schema interface {
	String() string
}

// Stringify renders a schema the way it is sent to the model.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes renders a schema as raw bytes.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
