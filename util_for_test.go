package qcamap

import (
	"bytes"
	"context"
	"iter"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/qcatools/qcamap.go/internal/fakeqcamap"
	"github.com/qcatools/qcamap.go/pkg/connection"
	"github.com/qcatools/qcamap.go/pkg/logger"
	"github.com/qcatools/qcamap.go/pkg/models"
)

const (
	testProjectID          = 26562
	testResearchQuestionID = 39860

	catDesign    = 1
	catNotDesign = 2
	catOther     = 3

	docReview    = 100
	docInterview = 200
)

// fixture is a fake service seeded with two documents, three categories and
// six markers:
//
//	doc 100: 10 (0-5, Not design), 11 (6-10, Design), 12 (11-20, Other)
//	doc 200: 13 (0-3, Not design), 14 (4-8, Other), 15 (9-12, Other)
type fixture struct {
	srv  *fakeqcamap.Server
	conn *connection.HTTPConnection
	logs *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	srv := fakeqcamap.New(testProjectID, testResearchQuestionID).Start()
	t.Cleanup(srv.Close)

	srv.AddCategory(models.Record{"id": catDesign, "name": "Design", "number": 1, "ordering": 1, "type": "C"})
	srv.AddCategory(models.Record{"id": catNotDesign, "name": "Not design", "number": 2, "ordering": 2, "type": "C"})
	srv.AddCategory(models.Record{"id": catOther, "name": "Other", "number": 3, "ordering": 3, "type": "C"})

	srv.AddDocument(models.Record{"id": docReview, "title": "review-15261.txt", "ordering": 1, "contentType": "text", "contentLength": 8772})
	srv.AddDocument(models.Record{"id": docInterview, "title": "interview.txt", "ordering": 2, "contentType": "text", "contentLength": 1200})

	srv.AddMarker(docReview, models.Record{"id": 10, "start": 0, "end": 5, "categoryId": catNotDesign})
	srv.AddMarker(docReview, models.Record{"id": 11, "start": 6, "end": 10, "categoryId": catDesign})
	srv.AddMarker(docReview, models.Record{"id": 12, "start": 11, "end": 20, "categoryId": catOther})
	srv.AddMarker(docInterview, models.Record{"id": 13, "start": 0, "end": 3, "categoryId": catNotDesign})
	srv.AddMarker(docInterview, models.Record{"id": 14, "start": 4, "end": 8, "categoryId": catOther})
	srv.AddMarker(docInterview, models.Record{"id": 15, "start": 9, "end": 12, "categoryId": catOther})

	params, err := connection.NewConfigFromString(srv.URL())
	require.NoError(t, err)

	return &fixture{
		srv:  srv,
		conn: connection.NewHTTPConnection(*params),
		logs: &bytes.Buffer{},
	}
}

func (f *fixture) project(t *testing.T, opts ...Option) *Project {
	t.Helper()

	l, err := logger.New().FromBuffer(f.logs).WithLevel(zerolog.DebugLevel).Make()
	require.NoError(t, err)

	return New(f.conn, testProjectID, testResearchQuestionID, append([]Option{WithLogger(l)}, opts...)...)
}

func (f *fixture) loaded(t *testing.T, opts ...Option) *Project {
	t.Helper()

	p := f.project(t, opts...)
	require.NoError(t, p.Load(context.Background()))
	return p
}

func markerIDs(seq iter.Seq[*Marker]) []int64 {
	var ids []int64
	for m := range seq {
		ids = append(ids, m.ID())
	}
	return ids
}

func categoryNames(cs []*Category) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name())
	}
	return names
}
