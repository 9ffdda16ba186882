package codec

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
)

// JSON encodes and decodes the remote service's payloads.
//
// Numbers are decoded as json.Number so that record identifiers survive
// a decode/encode round trip without passing through float64.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

func (c JSON) Unmarshal(data []byte, dst any) error {
	return c.NewDecoder(bytes.NewReader(data)).Decode(dst)
}

func (JSON) NewDecoder(r io.Reader) Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}
