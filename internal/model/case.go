package model

// SourceType identifies where smart-import content comes from
type SourceType string

const (
	SourceURL   SourceType = "url"   // web page, fetched and HTML-stripped
	SourceText  SourceType = "text"  // pasted plain text
	SourceImage SourceType = "image" // uploaded image URL (no OCR yet)
	SourcePDF   SourceType = "pdf"   // uploaded PDF URL (no parsing yet)
)

// ImportRequest is one smart-import invocation
type ImportRequest struct {
	Type    SourceType `json:"type"`
	Content string     `json:"content"` // URL for url/image/pdf, raw text for text
}

// ParsedCase is the structured extraction result for one notice.
// All seven fields are optional: a miss is a nil field plus a warning,
// never an error.
type ParsedCase struct {
	ReportDate       *string `json:"report_date"`
	AppName          *string `json:"app_name"`
	Developer        *string `json:"developer"`
	Department       *string `json:"department"`
	Platform         *string `json:"platform"`
	ViolationSummary *string `json:"violation_summary"`
	ViolationDetail  *string `json:"violation_detail"`

	Confidence float64  `json:"confidence"` // filled fields / 7
	Warnings   []string `json:"warnings,omitempty"`
}

// FilledFields counts the non-nil fields
func (c *ParsedCase) FilledFields() int {
	n := 0
	for _, f := range []*string{
		c.ReportDate, c.AppName, c.Developer, c.Department,
		c.Platform, c.ViolationSummary, c.ViolationDetail,
	} {
		if f != nil {
			n++
		}
	}
	return n
}

// ImportResult wraps a ParsedCase with source metadata
type ImportResult struct {
	Case       *ParsedCase `json:"case"`
	SourceType SourceType  `json:"source_type"`
	SourceURL  string      `json:"source_url,omitempty"`
	FinalURL   string      `json:"final_url,omitempty"` // after redirects
	StatusCode int         `json:"status_code,omitempty"`
	CacheHit   bool        `json:"cache_hit,omitempty"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Summary    string      `json:"summary,omitempty"` // optional LLM review summary
}
