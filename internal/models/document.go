package models

import "time"

// DocumentKind distinguishes the stored source format.
type DocumentKind string

const (
	DocumentKindPDF   DocumentKind = "pdf"
	DocumentKindImage DocumentKind = "image"
)

// FieldStyle carries the visual attributes of an edited field.
type FieldStyle struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
	FontSize  int  `json:"fontSize,omitempty"`
}

// Field is one labeled value inside an edited section.
type Field struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Value string     `json:"value"`
	Style FieldStyle `json:"style"`
}

// Section is an ordered group of fields inside an edited document.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// EditedDocument is the user-edited structured representation. When present
// on a record it takes precedence over AnalysisResult.Data for rendering.
type EditedDocument struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// DocumentRecord is the persisted representation of one scanned or imported
// document. The full collection is stored as a single ordered list,
// newest-first.
type DocumentRecord struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	OriginalName string          `json:"originalName"`
	ImageURI     string          `json:"imageUri"`
	Analysis     *AnalysisResult `json:"analysisResult"`
	EditedData   *EditedDocument `json:"editedData,omitempty"`
	HasEdits     bool            `json:"hasEdits"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Size         int64           `json:"size"`
	Pages        int             `json:"pages"`
	Kind         DocumentKind    `json:"type"`
	Color        string          `json:"color"`
}

// DocumentUpdate carries a partial update; nil fields are left unchanged.
type DocumentUpdate struct {
	Name       *string
	Analysis   *AnalysisResult
	EditedData *EditedDocument
}

// DocumentMeta is the lighter projection used by list views.
type DocumentMeta struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Date     string       `json:"date"`
	Pages    int          `json:"pages"`
	Size     string       `json:"size"`
	Kind     DocumentKind `json:"type"`
	Color    string       `json:"color"`
	HasEdits bool         `json:"hasEdits"`
}
