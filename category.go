package qcamap

import (
	"github.com/qcatools/qcamap.go/pkg/models"
)

// Category is a coding label of one research question.
type Category struct {
	models.Proxy
}

func NewCategory(rec models.Record) *Category {
	return &Category{Proxy: models.NewProxy(rec)}
}

func (c *Category) ID() int64 {
	return c.Data().Int64(models.FieldID)
}

func (c *Category) Name() string {
	return c.Data().String(models.FieldName)
}

func (c *Category) SetName(name string) {
	c.Set(models.FieldName, name)
}

func (c *Category) Number() int64 {
	return c.Data().Int64(models.FieldNumber)
}

// Ordering is the 1-based display position.
func (c *Category) Ordering() int64 {
	return c.Data().Int64(models.FieldOrdering)
}

func (c *Category) SetOrdering(ordering int64) {
	c.Set(models.FieldOrdering, ordering)
}

func (c *Category) Color() string {
	return c.Data().String(models.FieldColor)
}

func (c *Category) Type() string {
	return c.Data().String(models.FieldType)
}

func (c *Category) Definition() string {
	return c.Data().String(models.FieldDefinition)
}

func (c *Category) CodingRules() string {
	return c.Data().String(models.FieldCodingRules)
}
