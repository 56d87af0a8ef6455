// Package codec defines the pluggable serialization strategy used by the
// secure store to convert records to and from the opaque byte payloads the
// vault persists.
package codec

// Codec converts a record to an opaque byte buffer and back. Implementations
// must be side-effect free; for every value v representable by the codec,
// Decode(Encode(v)) must reproduce v.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}
