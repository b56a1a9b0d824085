// Package documents implements the persisted document collection: a single
// ordered list of records stored as one blob, newest-first, plus the
// projections and formatting used by list views.
package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/docscan/internal/common"
	"github.com/dmitrijs2005/docscan/internal/imagestore"
	"github.com/dmitrijs2005/docscan/internal/kvstore"
	"github.com/dmitrijs2005/docscan/internal/logging"
	"github.com/dmitrijs2005/docscan/internal/models"
	"github.com/google/uuid"
)

// listKey is the kvstore key holding the JSON-encoded document list.
const listKey = "documents"

// Repository owns the document list. Every mutation loads the whole list,
// changes it in memory and writes the whole list back — the explicit
// read-modify-write contract described in the kvstore package.
type Repository struct {
	store  kvstore.Store
	images imagestore.Store
	log    logging.Logger

	// seams for tests
	now     func() time.Time
	randHex func(int) (string, error)
}

func NewRepository(store kvstore.Store, images imagestore.Store, log logging.Logger) *Repository {
	return &Repository{
		store:   store,
		images:  images,
		log:     log.With("component", "documents"),
		now:     time.Now,
		randHex: common.MakeRandHexString,
	}
}

func (r *Repository) loadList(ctx context.Context) ([]*models.DocumentRecord, error) {
	b, err := r.store.Get(ctx, listKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading document list: %w", errors.Join(common.ErrorStorage, err))
	}

	var list []*models.DocumentRecord
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decoding document list: %w", errors.Join(common.ErrorStorage, err))
	}
	return list, nil
}

func (r *Repository) saveList(ctx context.Context, list []*models.DocumentRecord) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding document list: %w", errors.Join(common.ErrorStorage, err))
	}
	if err := r.store.Set(ctx, listKey, b); err != nil {
		return fmt.Errorf("saving document list: %w", errors.Join(common.ErrorStorage, err))
	}
	return nil
}

// deriveName builds the display name: the edited title when present,
// otherwise "<Type Label> <date> <4-hex suffix>".
func (r *Repository) deriveName(res *models.AnalysisResult, edited *models.EditedDocument, at time.Time) string {
	if edited != nil && strings.TrimSpace(edited.Title) != "" {
		return strings.TrimSpace(edited.Title)
	}

	docType := models.DocumentTypeUnknown
	if res != nil && res.DocumentType != "" {
		docType = res.DocumentType
	}

	suffix, err := r.randHex(2)
	if err != nil {
		suffix = "0000"
	}
	return fmt.Sprintf("%s %s %s", typeLabel(docType), at.Format("2006-01-02"), suffix)
}

func kindForSource(sourceURI string) models.DocumentKind {
	if strings.EqualFold(filepath.Ext(sourceURI), ".pdf") {
		return models.DocumentKindPDF
	}
	return models.DocumentKindImage
}

// Save creates a new record from a capture: the image is handed to the
// image store, the name is derived, and the record is prepended to the
// persisted list (newest-first). Returns the new record.
func (r *Repository) Save(ctx context.Context, sourceURI string, res *models.AnalysisResult, edited *models.EditedDocument) (*models.DocumentRecord, error) {
	list, err := r.loadList(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	id := uuid.NewString()

	storedURI, size, err := r.images.Add(ctx, sourceURI, id)
	if err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}

	name := r.deriveName(res, edited, now)
	docType := models.DocumentTypeUnknown
	if res != nil {
		docType = res.DocumentType
	}

	rec := &models.DocumentRecord{
		ID:           id,
		Name:         name,
		OriginalName: name,
		ImageURI:     storedURI,
		Analysis:     res,
		EditedData:   edited,
		HasEdits:     edited != nil,
		CreatedAt:    now,
		UpdatedAt:    now,
		Size:         size,
		Pages:        1,
		Kind:         kindForSource(sourceURI),
		Color:        ColorForType(docType),
	}

	list = append([]*models.DocumentRecord{rec}, list...)
	if err := r.saveList(ctx, list); err != nil {
		return nil, err
	}

	r.log.Info(ctx, "document saved", "id", id, "type", docType)
	return rec, nil
}

// Get returns the record with the given id, or common.ErrorNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*models.DocumentRecord, error) {
	list, err := r.loadList(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, common.ErrorNotFound)
}

// Update merges the partial update into the matching record and bumps
// UpdatedAt. A missing id is the recoverable common.ErrorNotFound, not a
// hard failure.
func (r *Repository) Update(ctx context.Context, id string, upd models.DocumentUpdate) (*models.DocumentRecord, error) {
	list, err := r.loadList(ctx)
	if err != nil {
		return nil, err
	}

	var rec *models.DocumentRecord
	for _, item := range list {
		if item.ID == id {
			rec = item
			break
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrorNotFound)
	}

	if upd.Name != nil {
		rec.Name = *upd.Name
	}
	if upd.Analysis != nil {
		rec.Analysis = upd.Analysis
	}
	if upd.EditedData != nil {
		rec.EditedData = upd.EditedData
		rec.HasEdits = true
	}
	rec.UpdatedAt = r.now()

	if err := r.saveList(ctx, list); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes one record and its stored image. Image removal is
// best-effort: a failure there is logged and does not block removing the
// metadata entry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.DeleteMany(ctx, []string{id})
}

// DeleteMany removes all records whose ids are listed.
func (r *Repository) DeleteMany(ctx context.Context, ids []string) error {
	list, err := r.loadList(ctx)
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := list[:0]
	for _, rec := range list {
		if _, ok := drop[rec.ID]; !ok {
			kept = append(kept, rec)
			continue
		}
		if err := r.images.Remove(ctx, rec.ImageURI); err != nil {
			r.log.Warn(ctx, "failed to remove image", "id", rec.ID, "error", err)
		}
	}

	if err := r.saveList(ctx, kept); err != nil {
		return err
	}
	r.log.Info(ctx, "documents deleted", "count", len(list)-len(kept))
	return nil
}

// ListMetadata projects the collection to the lighter display shape,
// sorted by CreatedAt descending regardless of stored order.
func (r *Repository) ListMetadata(ctx context.Context) ([]models.DocumentMeta, error) {
	list, err := r.loadList(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	now := r.now()
	metas := make([]models.DocumentMeta, 0, len(list))
	for _, rec := range list {
		metas = append(metas, models.DocumentMeta{
			ID:       rec.ID,
			Name:     rec.Name,
			Date:     FormatRelativeDate(rec.CreatedAt, now),
			Pages:    rec.Pages,
			Size:     FormatSize(rec.Size),
			Kind:     rec.Kind,
			Color:    rec.Color,
			HasEdits: rec.HasEdits,
		})
	}
	return metas, nil
}

// Search returns the metadata entries whose name contains query,
// case-insensitively.
func (r *Repository) Search(ctx context.Context, query string) ([]models.DocumentMeta, error) {
	metas, err := r.ListMetadata(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]models.DocumentMeta, 0, len(metas))
	for _, m := range metas {
		if strings.Contains(strings.ToLower(m.Name), q) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// Count returns the number of persisted documents.
func (r *Repository) Count(ctx context.Context) (int, error) {
	list, err := r.loadList(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Stats returns the number of persisted documents and their combined size.
func (r *Repository) Stats(ctx context.Context) (count int, totalSize int64, err error) {
	list, err := r.loadList(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, rec := range list {
		totalSize += rec.Size
	}
	return len(list), totalSize, nil
}

// ClearAll removes every record and the whole image directory. Full reset.
func (r *Repository) ClearAll(ctx context.Context) error {
	if err := r.images.Clear(ctx); err != nil {
		return fmt.Errorf("clearing images: %w", err)
	}
	if err := r.store.Delete(ctx, listKey); err != nil {
		return fmt.Errorf("clearing document list: %w", errors.Join(common.ErrorStorage, err))
	}
	r.log.Info(ctx, "all documents cleared")
	return nil
}
