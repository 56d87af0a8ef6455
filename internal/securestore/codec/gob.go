package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob is a compact binary alternative to the JSON codec. Payloads are not
// interchangeable between codecs, so pick one per vault namespace and stay
// with it.
type Gob struct{}

func (Gob) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Gob) Decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
