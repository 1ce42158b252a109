package httpx

// Page identifiers used in templates and navigation.
const (
	PageUpload = "upload"
	PageNews   = "news"
	PageError  = "error"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

const (
	sessionCookieName = "session_id"
	defaultUploadMax  = 10 << 20
	// multipartMemory bounds how much of an upload is held in memory before spilling to disk.
	multipartMemory = 8 << 20
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageUpload: "upload-content",
	PageNews:   "news-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to upload-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "upload-content"
}
