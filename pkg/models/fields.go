package models

// Field names used by the remote service.
const (
	FieldID         = "id"
	FieldOrdering   = "ordering"
	FieldCreatedAt  = "createdAt"
	FieldModifiedAt = "modifiedAt"

	// documents
	FieldProjectID     = "projectId"
	FieldTitle         = "title"
	FieldContentType   = "contentType"
	FieldContentLength = "contentLength"

	// categories
	FieldName               = "name"
	FieldNumber             = "number"
	FieldColor              = "color"
	FieldType               = "type"
	FieldDefinition         = "definition"
	FieldAnchorExamples     = "anchorExamples"
	FieldCodingRules        = "codingRules"
	FieldIsInsignificant    = "isInsignificant"
	FieldResearchQuestionID = "researchQuestionId"
	FieldMainCategoryID     = "mainCategoryId"

	// markers
	FieldStart      = "start"
	FieldEnd        = "end"
	FieldCategoryID = "categoryId"
	// Spelled as the service spells it.
	FieldContentDefinitionID = "contentDefintionId"
)

const (
	CategoryTypeCoding = "C"
	DefaultColor       = "#E4E4E4"
)

// NewCategoryRecord builds the payload for creating a category. Fields the
// caller does not choose get the values the service itself uses for a
// freshly created category.
func NewCategoryRecord(name string, researchQuestionID, number, ordering int64) Record {
	return Record{
		FieldID:                 nil,
		FieldType:               CategoryTypeCoding,
		FieldNumber:             number,
		FieldOrdering:           ordering,
		FieldIsInsignificant:    0,
		FieldName:               name,
		FieldColor:              DefaultColor,
		FieldDefinition:         nil,
		FieldAnchorExamples:     nil,
		FieldCodingRules:        nil,
		FieldResearchQuestionID: researchQuestionID,
		FieldMainCategoryID:     nil,
	}
}

// NewMarkerCopy returns a creation payload copying src onto another category.
func NewMarkerCopy(src Record, categoryID int64) Record {
	c := src.Clone()
	c[FieldID] = nil
	c[FieldCategoryID] = categoryID
	return c
}
