// Package vision calls the multimodal classification service and turns its
// output into AnalysisResults. The upstream model is treated as untrusted:
// whatever text comes back is decoded defensively and degrades to an
// unstructured fallback rather than failing the capture.
package vision

import (
	"context"

	"github.com/dmitrijs2005/docscan/internal/models"
)

// Classifier classifies one captured image and extracts structured fields.
// langHint is a BCP-47 code requesting the response language, or empty for
// auto-detection.
type Classifier interface {
	Classify(ctx context.Context, image []byte, mimeType, langHint string) (*models.AnalysisResult, error)
}
