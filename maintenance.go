package qcamap

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

func (p *Project) writeGroup(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	if p.writeConcurrency > 0 {
		g.SetLimit(p.writeConcurrency)
	}
	return g, gctx
}

// Merge retags every marker of the others categories with base and writes
// each retagged marker back. Writes run concurrently; Merge returns once all
// succeeded or with the first failure.
//
// All names are resolved before anything is written. The emptied categories
// are not removed; see RenameEmptyCategories.
func (p *Project) Merge(ctx context.Context, base string, others ...string) error {
	if err := p.requireLoaded("merge"); err != nil {
		return err
	}

	baseCategory, err := p.CategoryByName(base)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	otherCategories := make([]*Category, 0, len(others))
	for _, name := range others {
		c, err := p.CategoryByName(name)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		if c.ID() == baseCategory.ID() {
			continue
		}
		otherCategories = append(otherCategories, c)
	}

	g, gctx := p.writeGroup(ctx)
	for _, other := range otherCategories {
		for _, m := range slices.Collect(p.MarkersOfCategory(other)) {
			p.log.Info("changing marker category",
				"marker", m.ID(),
				"start", m.Start(),
				"end", m.End(),
				"from", other.Name(),
				"to", baseCategory.Name(),
			)
			m.SetCategoryID(baseCategory.ID())
			g.Go(func() error {
				return m.Update(gctx)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("merge into %q: %w", base, err)
	}
	return nil
}

// RenameEmptyCategories renames each named category that has no markers
// left, using format with the old name as its only argument, e.g.
// "%s (merged)". Categories that still have markers are skipped. It returns
// the renamed categories. Renames are written one at a time.
func (p *Project) RenameEmptyCategories(ctx context.Context, format string, names ...string) ([]*Category, error) {
	if err := p.requireLoaded("rename empty categories"); err != nil {
		return nil, err
	}

	categories := make([]*Category, 0, len(names))
	for _, name := range names {
		c, err := p.CategoryByName(name)
		if err != nil {
			return nil, fmt.Errorf("rename empty categories: %w", err)
		}
		categories = append(categories, c)
	}

	renamed := make([]*Category, 0, len(categories))
	for _, c := range categories {
		if n := countSeq(p.MarkersOfCategory(c)); n > 0 {
			p.log.Warn("category not empty, not renaming", "category", c.Name(), "markers", n)
			continue
		}
		c.SetName(fmt.Sprintf(format, c.Name()))
		if err := p.UpdateCategory(ctx, c); err != nil {
			return renamed, fmt.Errorf("rename empty categories: %w", err)
		}
		renamed = append(renamed, c)
	}
	return renamed, nil
}

// Duplicate creates a category named newName and copies every marker of
// base into it, each copy in the same document as its source. The markers
// of base are left untouched.
func (p *Project) Duplicate(ctx context.Context, base, newName string) (*Category, error) {
	if err := p.requireLoaded("duplicate"); err != nil {
		return nil, err
	}

	baseCategory, err := p.CategoryByName(base)
	if err != nil {
		return nil, fmt.Errorf("duplicate: %w", err)
	}
	sources := slices.Collect(p.MarkersOfCategory(baseCategory))

	created, err := p.CreateCategory(ctx, newName)
	if err != nil {
		return nil, fmt.Errorf("duplicate %q: %w", base, err)
	}

	g, gctx := p.writeGroup(ctx)
	for _, m := range sources {
		g.Go(func() error {
			_, err := m.Document().CopyMarkerToOtherCategory(gctx, m, created)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return created, fmt.Errorf("duplicate %q as %q: %w", base, newName, err)
	}
	p.log.Info("category duplicated", "from", base, "to", newName, "markers", len(sources))
	return created, nil
}

// SortCategories orders the categories by name, renumbers their 1-based
// ordering and writes every category back. The writes are strictly
// sequential: the service does not cope with concurrent ordering updates.
func (p *Project) SortCategories(ctx context.Context) error {
	if err := p.requireLoaded("sort categories"); err != nil {
		return err
	}

	sorted := slices.Clone(p.categories)
	slices.SortStableFunc(sorted, func(a, b *Category) int {
		return strings.Compare(a.Name(), b.Name())
	})
	for i, c := range sorted {
		c.SetOrdering(int64(i + 1))
	}
	p.categories = sorted

	for _, c := range sorted {
		if err := p.UpdateCategory(ctx, c); err != nil {
			return fmt.Errorf("sort categories: %w", err)
		}
	}
	p.log.Info("categories sorted", "categories", len(sorted))
	return nil
}

func countSeq[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
