package models

import (
	"github.com/goccy/go-json"
)

// Proxy gives an entity read/write access to its backing Record.
// Entities embed it; the zero value has no record.
type Proxy struct {
	data Record
}

func NewProxy(data Record) Proxy {
	return Proxy{data: data}
}

// Data returns the backing record itself, not a copy.
func (p Proxy) Data() Record {
	return p.data
}

func (p Proxy) Get(name string) any {
	return p.data.Get(name)
}

func (p Proxy) Set(name string, value any) {
	p.data.Set(name, value)
}

func (p Proxy) Fields() []string {
	return p.data.Fields()
}

// MarshalJSON emits the backing record verbatim.
func (p Proxy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.data)
}
