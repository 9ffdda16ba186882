package models

import (
	"sort"

	"github.com/spf13/cast"
)

// Record is a flat JSON object as exchanged with the remote service.
type Record map[string]any

func (r Record) Get(name string) any {
	return r[name]
}

func (r Record) Set(name string, value any) {
	r[name] = value
}

func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Fields returns the keys currently present, sorted.
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

func (r Record) Int64(name string) int64 {
	return cast.ToInt64(r[name])
}

// NullInt64 reports false when the field is missing, null, or not a number.
func (r Record) NullInt64(name string) (int64, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r Record) String(name string) string {
	return cast.ToString(r[name])
}

func (r Record) Bool(name string) bool {
	return cast.ToBool(r[name])
}
