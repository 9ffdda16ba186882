// Package models contains the entity proxy used to expose the remote
// service's JSON records as mutable Go values.
//
// The remote service owns the record schema. A [Record] holds whatever keys
// the service sent, and writes go straight back into the same map, so a
// record fetched, modified and sent back carries every field the client
// does not know about unchanged.
//
// Typed accessors ([Record.Int64], [Record.String], ...) coerce loosely and
// never validate: a mis-shaped value reads as the zero value and is left
// in the record as it was.
package models
