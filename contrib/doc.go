// Package contrib provides tools built on top of the qcamap Go client.
//
// Note that this package is outside of the backward compatibility guarantees
// provided by the core client. Changes to this package may introduce
// breaking changes without following semantic versioning.
//
// [github.com/qcatools/qcamap.go/contrib/qcamapctl] runs the category
// maintenance operations (merge, duplicate, sort) from the command line and
// exports a loaded project as JSON.
package contrib
