package constants

// API path templates, relative to the service base URL.
// Verbs: %[1]d project, %[2]d research question, %[3]d document or category, %[4]d marker.
const (
	PathDocuments  = "/api/v1/projects/%[1]d/contents"
	PathCategories = "/api/v1/projects/%[1]d/researchQuestions/%[2]d/categories"
	PathCategory   = "/api/v1/projects/%[1]d/researchQuestions/%[2]d/categories/%[3]d"
	PathMarkers    = "/api/v1/projects/%[1]d/researchQuestions/%[2]d/contents/%[3]d/markers"
	PathMarker     = "/api/v1/projects/%[1]d/researchQuestions/%[2]d/contents/%[3]d/markers/%[4]d"
)

var (
	HTTPScheme       = "http"
	HTTPSecureScheme = "https"

	DefaultBaseURL = "https://www.qcamap.org"
)
