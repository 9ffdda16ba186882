package qcamap_test

import (
	"context"
	"fmt"

	qcamap "github.com/qcatools/qcamap.go"
	"github.com/qcatools/qcamap.go/internal/fakeqcamap"
	"github.com/qcatools/qcamap.go/pkg/models"
)

func newExampleServer() *fakeqcamap.Server {
	srv := fakeqcamap.New(26562, 39860).Start()

	srv.AddCategory(models.Record{"id": 1, "name": "Design", "number": 1, "ordering": 1})
	srv.AddCategory(models.Record{"id": 2, "name": "Not design", "number": 2, "ordering": 2})
	srv.AddCategory(models.Record{"id": 3, "name": "Architecture", "number": 3, "ordering": 3})
	srv.AddDocument(models.Record{"id": 100, "title": "review-15261.txt"})
	srv.AddMarker(100, models.Record{"id": 10, "start": 0, "end": 5, "categoryId": 2})
	srv.AddMarker(100, models.Record{"id": 11, "start": 6, "end": 10, "categoryId": 1})
	srv.AddMarker(100, models.Record{"id": 12, "start": 11, "end": 20, "categoryId": 2})
	return srv
}

// ExampleProject_Merge moves the markers of one category onto another and
// then marks the emptied category for removal.
func ExampleProject_Merge() {
	srv := newExampleServer()
	defer srv.Close()

	ctx := context.Background()
	p, err := qcamap.FromLocation(ctx, srv.URL()+"/ui/projects/26562/rq/39860/coding", nil)
	if err != nil {
		panic(err)
	}

	if err := p.Merge(ctx, "Design", "Not design"); err != nil {
		panic(err)
	}
	if _, err := p.RenameEmptyCategories(ctx, "%s (merged)", "Not design"); err != nil {
		panic(err)
	}

	for _, stat := range p.Stats() {
		fmt.Printf("%s: %d\n", stat.Category.Name(), stat.Markers)
	}

	// Output:
	// Design: 3
	// Not design (merged): 0
	// Architecture: 0
}

// ExampleProject_SortCategories renumbers categories alphabetically.
func ExampleProject_SortCategories() {
	srv := newExampleServer()
	defer srv.Close()

	ctx := context.Background()
	p, err := qcamap.FromLocation(ctx, srv.URL()+"/ui/projects/26562/rq/39860/coding", nil)
	if err != nil {
		panic(err)
	}

	if err := p.SortCategories(ctx); err != nil {
		panic(err)
	}

	for _, c := range p.Categories() {
		fmt.Printf("%s %d\n", c.Name(), c.Ordering())
	}

	// Output:
	// Architecture 1
	// Design 2
	// Not design 3
}
