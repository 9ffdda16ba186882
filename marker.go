package qcamap

import (
	"context"
	"fmt"

	"github.com/qcatools/qcamap.go/pkg/constants"
	"github.com/qcatools/qcamap.go/pkg/models"
)

// Marker is a coded span of a document.
type Marker struct {
	models.Proxy

	// not owned
	document *Document
}

func NewMarker(doc *Document, rec models.Record) (*Marker, error) {
	if doc == nil || rec == nil {
		return nil, fmt.Errorf("new marker: %w: document and record are required", constants.ErrInvalidArgument)
	}
	return &Marker{Proxy: models.NewProxy(rec), document: doc}, nil
}

func (m *Marker) Document() *Document {
	return m.document
}

func (m *Marker) ID() int64 {
	return m.Data().Int64(models.FieldID)
}

func (m *Marker) Start() int64 {
	return m.Data().Int64(models.FieldStart)
}

func (m *Marker) End() int64 {
	return m.Data().Int64(models.FieldEnd)
}

func (m *Marker) CategoryID() int64 {
	return m.Data().Int64(models.FieldCategoryID)
}

func (m *Marker) SetCategoryID(id int64) {
	m.Set(models.FieldCategoryID, id)
}

// Update writes the marker's current record to the service.
func (m *Marker) Update(ctx context.Context) error {
	return m.document.UpdateMarker(ctx, m)
}

func (m *Marker) Delete(ctx context.Context) error {
	return m.document.DeleteMarker(ctx, m)
}
