// Package qcamap mirrors a project of a remote qualitative-coding service
// into an in-memory object graph and keeps it synchronized.
//
// # Object Graph
//
// A [Project] owns its [Document] and [Category] collections; a [Document]
// owns its [Marker] collection. Every entity wraps the JSON record the
// service sent (see [github.com/qcatools/qcamap.go/pkg/models]) and writes
// go straight into that record, so an update always sends back every field
// the service knows about, including ones this package does not model.
//
// Mutating an entity only changes memory. The change becomes durable when
// the matching update call ([Marker.Update], [Project.UpdateCategory])
// succeeds.
//
// # Loading
//
// [Project.Load] fetches the document and category listings concurrently and
// then every document's markers concurrently. The first failure aborts the
// whole load and leaves the project in [StateFailed]; a project is loaded at
// most once, so build a new one to reload.
//
// # Category Maintenance
//
//   - [Project.Merge] moves every marker of some categories onto another one.
//     The emptied categories are kept; call [Project.RenameEmptyCategories]
//     to mark them for manual removal.
//   - [Project.Duplicate] creates a category and copies another category's
//     markers into it.
//   - [Project.SortCategories] orders categories by name and writes the new
//     ordering one category at a time.
//
// None of these are transactional. A failed remote call stops the operation
// and is returned as is; writes that already went through stay applied.
//
// # Entry Point
//
// [FromLocation] takes the address of the service's coding view, e.g.
// https://www.qcamap.org/ui/projects/26562/rq/39860/coding, and returns the
// loaded project.
package qcamap
