package vision

import (
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/docscan/internal/models"
)

// envelope covers the response shapes the model has been observed to emit:
// fields at the top level, or the whole object nested under "data", with a
// couple of alternate key spellings.
type envelope struct {
	DocumentType    string           `json:"documentType"`
	DocumentTypeAlt string           `json:"document_type"`
	Confidence      float64          `json:"confidence"`
	Language        *models.Language `json:"language"`
	Data            json.RawMessage  `json:"data"`
	RawText         string           `json:"rawText"`
	RawTextAlt      string           `json:"raw_text"`
	Text            string           `json:"text"`
	Tags            []string         `json:"tags"`
	Warnings        []string         `json:"warnings"`
}

func (e *envelope) docType() string {
	if e.DocumentType != "" {
		return e.DocumentType
	}
	return e.DocumentTypeAlt
}

func (e *envelope) rawText() string {
	if e.RawText != "" {
		return e.RawText
	}
	if e.RawTextAlt != "" {
		return e.RawTextAlt
	}
	return e.Text
}

// extractJSON strips markdown code fences and trims the content down to the
// outermost {...} block. Returns "" when no object is present.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// decodeAnalysis turns raw model output into an AnalysisResult. Any content
// that cannot be parsed as the expected object becomes an unstructured
// fallback instead of an error: one bad answer must not sink a capture.
func decodeAnalysis(content string) *models.AnalysisResult {
	text := extractJSON(content)
	if text == "" {
		return unstructured(content)
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return unstructured(content)
	}

	// Some answers wrap everything one level down under "data".
	if env.docType() == "" && len(env.Data) > 0 {
		var inner envelope
		if err := json.Unmarshal(env.Data, &inner); err == nil && inner.docType() != "" {
			env = inner
		}
	}

	if env.docType() == "" {
		return unstructured(content)
	}

	res := &models.AnalysisResult{
		Success:      true,
		DocumentType: normalizeType(env.docType()),
		Confidence:   clamp01(env.Confidence),
		RawText:      env.rawText(),
		Tags:         env.Tags,
		Warnings:     env.Warnings,
	}
	if env.Language != nil {
		res.Language = *env.Language
	}
	if len(env.Data) > 0 {
		var fields map[string]any
		if err := json.Unmarshal(env.Data, &fields); err == nil {
			res.Data = fields
		}
	}
	return res
}

// unstructured builds the low-confidence fallback for answers that are not
// JSON at all. The text is preserved so nothing the model read is lost.
func unstructured(content string) *models.AnalysisResult {
	return &models.AnalysisResult{
		Success:      true,
		DocumentType: models.DocumentTypeUnknown,
		Confidence:   0.2,
		RawText:      strings.TrimSpace(content),
		Warnings:     []string{"response was not structured"},
	}
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return models.DocumentTypeUnknown
	}
	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
