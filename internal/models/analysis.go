// Package models defines the document records and classification results
// persisted by the repository and produced by the vision client.
package models

// Language describes the language detected in a scanned document.
type Language struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResult is the outcome of one classification+extraction call.
//
// Data holds the structured fields the model extracted, keyed by field name.
// RawText is the full extracted text. When the upstream response could not
// be decoded into a structured shape, Data is empty and RawText carries
// whatever text came back (the unstructured fallback variant).
type AnalysisResult struct {
	Success      bool           `json:"success"`
	DocumentType string         `json:"documentType"`
	Confidence   float64        `json:"confidence"`
	Language     Language       `json:"language"`
	Data         map[string]any `json:"data,omitempty"`
	RawText      string         `json:"rawText"`
	Tags         []string       `json:"tags,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	ProcessingMs int64          `json:"processingMs"`
}

// DocumentTypeUnknown is the fallback classification used when the external
// service fails or returns something unusable.
const DocumentTypeUnknown = "unknown"

// UnknownResult builds the degraded "unknown document" result used when the
// classification call fails. The capture is preserved with whatever little
// information is available; the failure reason is recorded as a warning.
func UnknownResult(reason string) *AnalysisResult {
	return &AnalysisResult{
		Success:      false,
		DocumentType: DocumentTypeUnknown,
		Confidence:   0,
		Language:     Language{Code: "und", Name: "Unknown"},
		RawText:      "",
		Warnings:     []string{reason},
	}
}
