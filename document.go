package qcamap

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/qcatools/qcamap.go/pkg/constants"
	"github.com/qcatools/qcamap.go/pkg/models"
)

// Document is a text of the project. It owns its markers.
type Document struct {
	models.Proxy

	project *Project

	mu      sync.Mutex
	markers []*Marker
}

func newDocument(p *Project, rec models.Record) *Document {
	return &Document{Proxy: models.NewProxy(rec), project: p}
}

func (d *Document) Project() *Project {
	return d.project
}

func (d *Document) ID() int64 {
	return d.Data().Int64(models.FieldID)
}

func (d *Document) Title() string {
	return d.Data().String(models.FieldTitle)
}

func (d *Document) Ordering() int64 {
	return d.Data().Int64(models.FieldOrdering)
}

func (d *Document) ContentType() string {
	return d.Data().String(models.FieldContentType)
}

func (d *Document) ContentLength() int64 {
	return d.Data().Int64(models.FieldContentLength)
}

// Markers returns the markers currently held, in listing order.
func (d *Document) Markers() []*Marker {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Marker(nil), d.markers...)
}

func (d *Document) markersPath() string {
	return fmt.Sprintf(constants.PathMarkers, d.project.projectID, d.project.researchQuestionID, d.ID())
}

func (d *Document) markerPath(m *Marker) string {
	return fmt.Sprintf(constants.PathMarker, d.project.projectID, d.project.researchQuestionID, d.ID(), m.ID())
}

// LoadMarkers replaces the in-memory markers with the service's listing.
func (d *Document) LoadMarkers(ctx context.Context) error {
	var recs []models.Record
	if err := d.project.conn.Send(ctx, http.MethodGet, d.markersPath(), nil, &recs); err != nil {
		return fmt.Errorf("load markers of document %d: %w", d.ID(), err)
	}

	markers := make([]*Marker, 0, len(recs))
	for _, rec := range recs {
		m, err := NewMarker(d, rec)
		if err != nil {
			return fmt.Errorf("load markers of document %d: %w", d.ID(), err)
		}
		markers = append(markers, m)
	}

	d.mu.Lock()
	d.markers = markers
	d.mu.Unlock()
	return nil
}

func (d *Document) UpdateMarker(ctx context.Context, m *Marker) error {
	if err := d.project.conn.Send(ctx, http.MethodPut, d.markerPath(m), m.Data(), nil); err != nil {
		return fmt.Errorf("update marker %d: %w", m.ID(), err)
	}
	return nil
}

// CopyMarkerToOtherCategory creates a marker with m's span tagged with c and
// appends it to the document once the service has assigned its id.
func (d *Document) CopyMarkerToOtherCategory(ctx context.Context, m *Marker, c *Category) (*Marker, error) {
	rec := models.NewMarkerCopy(m.Data(), c.ID())

	var created models.Record
	if err := d.project.conn.Send(ctx, http.MethodPost, d.markersPath(), rec, &created); err != nil {
		return nil, fmt.Errorf("copy marker %d to category %q: %w", m.ID(), c.Name(), err)
	}
	if created == nil {
		return nil, fmt.Errorf("copy marker %d to category %q: %w: empty response", m.ID(), c.Name(), constants.ErrInvalidResponse)
	}

	copied, err := NewMarker(d, created)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.markers = append(d.markers, copied)
	d.mu.Unlock()
	return copied, nil
}

func (d *Document) CreateMarker(ctx context.Context) (*Marker, error) {
	return nil, fmt.Errorf("create marker: %w", constants.ErrNotImplemented)
}

func (d *Document) DeleteMarker(ctx context.Context, m *Marker) error {
	return fmt.Errorf("delete marker %d: %w", m.ID(), constants.ErrNotImplemented)
}
