package qcamap

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/qcatools/qcamap.go/pkg/connection"
	"github.com/qcatools/qcamap.go/pkg/constants"
	"github.com/qcatools/qcamap.go/pkg/location"
	"github.com/qcatools/qcamap.go/pkg/logger"
	"github.com/qcatools/qcamap.go/pkg/models"
)

type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Project is the root of the object graph: one project seen through one
// research question.
//
// A Project is meant to be driven by a single caller. Its methods run remote
// calls concurrently internally, but concurrent calls on the same Project
// from several goroutines are not supported.
type Project struct {
	conn             connection.Connection
	log              logger.Logger
	writeConcurrency int

	projectID          int64
	researchQuestionID int64

	mu         sync.Mutex
	state      State
	documents  []*Document
	categories []*Category
}

type Option func(*Project)

func WithLogger(l logger.Logger) Option {
	return func(p *Project) {
		p.log = l
	}
}

// WithWriteConcurrency caps the number of marker writes Merge and Duplicate
// keep in flight. Zero or less means no cap.
func WithWriteConcurrency(n int) Option {
	return func(p *Project) {
		p.writeConcurrency = n
	}
}

func New(conn connection.Connection, projectID, researchQuestionID int64, opts ...Option) *Project {
	p := &Project{
		conn:               conn,
		log:                logger.Nop(),
		projectID:          projectID,
		researchQuestionID: researchQuestionID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Project) ProjectID() int64 {
	return p.projectID
}

func (p *Project) ResearchQuestionID() int64 {
	return p.researchQuestionID
}

func (p *Project) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Project) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Project) requireLoaded(op string) error {
	if s := p.State(); s != StateLoaded {
		return fmt.Errorf("%s: %w (state %s)", op, constants.ErrNotLoaded, s)
	}
	return nil
}

func (p *Project) Documents() []*Document {
	return p.documents
}

func (p *Project) Categories() []*Category {
	return p.categories
}

// Load builds the graph from the service. Documents and categories are
// fetched concurrently, then all documents' markers concurrently. Either
// everything loads or Load fails and the graph stays empty.
func (p *Project) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateUnloaded {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("load project %d: %w (state %s)", p.projectID, constants.ErrAlreadyLoaded, state)
	}
	p.state = StateLoading
	p.mu.Unlock()

	var (
		documents  []*Document
		categories []*Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		documents, err = p.loadDocuments(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = p.loadCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.setState(StateFailed)
		p.log.Error("project load failed", "project", p.projectID, "error", err.Error())
		return fmt.Errorf("load project %d: %w", p.projectID, err)
	}

	p.documents = documents
	p.categories = categories
	p.setState(StateLoaded)

	markers := 0
	for _, d := range documents {
		markers += len(d.Markers())
	}
	p.log.Info("project loaded",
		"project", p.projectID,
		"researchQuestion", p.researchQuestionID,
		"documents", len(documents),
		"categories", len(categories),
		"markers", markers,
	)
	return nil
}

func (p *Project) loadDocuments(ctx context.Context) ([]*Document, error) {
	var recs []models.Record
	if err := p.conn.Send(ctx, http.MethodGet, fmt.Sprintf(constants.PathDocuments, p.projectID), nil, &recs); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	documents := make([]*Document, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			return nil, fmt.Errorf("list documents: %w: null document record", constants.ErrInvalidResponse)
		}
		documents = append(documents, newDocument(p, rec))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, doc := range documents {
		g.Go(func() error {
			return doc.LoadMarkers(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return documents, nil
}

func (p *Project) loadCategories(ctx context.Context) ([]*Category, error) {
	var recs []models.Record
	if err := p.conn.Send(ctx, http.MethodGet, fmt.Sprintf(constants.PathCategories, p.projectID, p.researchQuestionID), nil, &recs); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]*Category, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			return nil, fmt.Errorf("list categories: %w: null category record", constants.ErrInvalidResponse)
		}
		categories = append(categories, NewCategory(rec))
	}
	return categories, nil
}

// CategoryByName returns the first category whose name equals name exactly.
func (p *Project) CategoryByName(name string) (*Category, error) {
	for _, c := range p.categories {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, &CategoryNotFoundError{Name: name}
}

func (p *Project) CategoryByID(id int64) (*Category, bool) {
	for _, c := range p.categories {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Markers yields every marker of every document. Each iteration walks the
// graph as it is at that moment.
func (p *Project) Markers() iter.Seq[*Marker] {
	return func(yield func(*Marker) bool) {
		for _, doc := range p.documents {
			for _, m := range doc.Markers() {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// MarkersOfCategory yields the markers tagged with c.
func (p *Project) MarkersOfCategory(c *Category) iter.Seq[*Marker] {
	return func(yield func(*Marker) bool) {
		id := c.ID()
		for m := range p.Markers() {
			if m.CategoryID() == id && !yield(m) {
				return
			}
		}
	}
}

// CreateCategory creates a category named name and appends it once the
// service has assigned its id.
func (p *Project) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if err := p.requireLoaded("create category"); err != nil {
		return nil, err
	}

	var number int64
	for _, c := range p.categories {
		number = max(number, c.Number())
	}
	rec := models.NewCategoryRecord(name, p.researchQuestionID, number+1, int64(len(p.categories)+1))

	var created models.Record
	path := fmt.Sprintf(constants.PathCategories, p.projectID, p.researchQuestionID)
	if err := p.conn.Send(ctx, http.MethodPost, path, rec, &created); err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	if created == nil {
		return nil, fmt.Errorf("create category %q: %w: empty response", name, constants.ErrInvalidResponse)
	}

	c := NewCategory(created)
	p.categories = append(p.categories, c)
	p.log.Info("category created", "category", c.ID(), "name", c.Name())
	return c, nil
}

// UpdateCategory writes c's current record to the service.
func (p *Project) UpdateCategory(ctx context.Context, c *Category) error {
	path := fmt.Sprintf(constants.PathCategory, p.projectID, p.researchQuestionID, c.ID())
	if err := p.conn.Send(ctx, http.MethodPut, path, c.Data(), nil); err != nil {
		return fmt.Errorf("update category %q: %w", c.Name(), err)
	}
	return nil
}

// Copy would duplicate the whole project. The service offers no endpoint
// for it yet.
func (p *Project) Copy(ctx context.Context) (*Project, error) {
	return nil, fmt.Errorf("copy project %d: %w", p.projectID, constants.ErrNotImplemented)
}

// CategoryStat counts the markers of one category.
type CategoryStat struct {
	Category *Category
	Markers  int
}

// Stats counts markers per category, in category order. Markers whose
// category is not loaded are counted under a nil Category at the end.
func (p *Project) Stats() []CategoryStat {
	counts := make(map[int64]int)
	for m := range p.Markers() {
		counts[m.CategoryID()]++
	}

	stats := make([]CategoryStat, 0, len(p.categories)+1)
	for _, c := range p.categories {
		stats = append(stats, CategoryStat{Category: c, Markers: counts[c.ID()]})
		delete(counts, c.ID())
	}
	orphans := 0
	for _, n := range counts {
		orphans += n
	}
	if orphans > 0 {
		stats = append(stats, CategoryStat{Markers: orphans})
	}
	return stats
}

// FromLocation parses the address of a coding view, then builds and loads
// its project. A nil conn connects to the address's host.
func FromLocation(ctx context.Context, href string, conn connection.Connection, opts ...Option) (*Project, error) {
	loc, err := location.Parse(href)
	if err != nil {
		return nil, err
	}

	if conn == nil {
		base := loc.BaseURL
		if base == "" {
			base = constants.DefaultBaseURL
		}
		params, err := connection.NewConfigFromString(base)
		if err != nil {
			return nil, err
		}
		conn = connection.NewHTTPConnection(*params)
	}

	p := New(conn, loc.ProjectID, loc.ResearchQuestionID, opts...)
	if err := p.Load(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
