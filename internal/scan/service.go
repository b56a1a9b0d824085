// Package scan wires classification and persistence into the single-capture
// flow: read the image, ask the classifier what it is, store the record.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docscan/internal/documents"
	"github.com/dmitrijs2005/docscan/internal/imagestore"
	"github.com/dmitrijs2005/docscan/internal/logging"
	"github.com/dmitrijs2005/docscan/internal/models"
	"github.com/dmitrijs2005/docscan/internal/vision"
)

// Service performs single-document captures.
type Service struct {
	classifier vision.Classifier
	repo       *documents.Repository
	log        logging.Logger

	// readFile is a seam for tests.
	readFile func(string) ([]byte, error)
}

func NewService(classifier vision.Classifier, repo *documents.Repository, log logging.Logger) *Service {
	return &Service{
		classifier: classifier,
		repo:       repo,
		log:        log,
		readFile:   os.ReadFile,
	}
}

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
	".pdf":  "application/pdf",
}

// loadImage returns the raw bytes and mime type for a capture source, which
// is either an inline data: URI or a path on disk.
func (s *Service) loadImage(sourceURI string) ([]byte, string, error) {
	if imagestore.IsDataURI(sourceURI) {
		data, mediaType, err := imagestore.DecodeDataURI(sourceURI)
		if err != nil {
			return nil, "", fmt.Errorf("decoding capture: %w", err)
		}
		return data, mediaType, nil
	}

	data, err := s.readFile(sourceURI)
	if err != nil {
		return nil, "", fmt.Errorf("reading capture: %w", err)
	}
	mime := mimeByExt[strings.ToLower(filepath.Ext(sourceURI))]
	if mime == "" {
		mime = "image/jpeg"
	}
	return data, mime, nil
}

// ScanAndSave classifies a capture and persists the resulting record.
// A classification failure does not lose the capture: the document is saved
// with an unknown-type result carrying the failure reason.
func (s *Service) ScanAndSave(ctx context.Context, sourceURI, langHint string) (*models.DocumentRecord, error) {
	data, mime, err := s.loadImage(sourceURI)
	if err != nil {
		return nil, err
	}

	res, err := s.classifier.Classify(ctx, data, mime, langHint)
	if err != nil {
		s.log.Warn(ctx, "classification failed, saving as unknown", "error", err)
		res = models.UnknownResult(err.Error())
	}

	return s.repo.Save(ctx, sourceURI, res, nil)
}

// ImportOne classifies a capture and persists it only when classification
// succeeds. There is no degraded fallback here: a classifier error comes
// back to the caller and nothing is saved. Batch import uses this so a
// failed item is counted, not recorded as an unknown document.
func (s *Service) ImportOne(ctx context.Context, sourceURI, langHint string) (*models.DocumentRecord, error) {
	data, mime, err := s.loadImage(sourceURI)
	if err != nil {
		return nil, err
	}

	res, err := s.classifier.Classify(ctx, data, mime, langHint)
	if err != nil {
		return nil, fmt.Errorf("classifying capture: %w", err)
	}

	return s.repo.Save(ctx, sourceURI, res, nil)
}
