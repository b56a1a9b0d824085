package documents

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/docscan/internal/common"
	"github.com/dmitrijs2005/docscan/internal/kvstore"
	"github.com/dmitrijs2005/docscan/internal/logging"
	"github.com/dmitrijs2005/docscan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubImages satisfies imagestore.Store without touching the filesystem.
type stubImages struct {
	removed []string
	cleared bool
	failAdd bool
}

func (s *stubImages) Add(_ context.Context, sourceURI, documentID string) (string, int64, error) {
	if s.failAdd {
		return "", 0, assert.AnError
	}
	return "/images/" + documentID + ".jpg", 2048, nil
}

func (s *stubImages) Remove(_ context.Context, uri string) error {
	s.removed = append(s.removed, uri)
	return nil
}

func (s *stubImages) Clear(context.Context) error {
	s.cleared = true
	return nil
}

func newTestRepo(t *testing.T) (*Repository, *stubImages, *struct{ now time.Time }) {
	t.Helper()
	images := &stubImages{}
	repo := NewRepository(kvstore.NewMemoryStore(), images, logging.NewDefaultSlogLogger())

	clock := &struct{ now time.Time }{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	repo.now = func() time.Time { return clock.now }
	repo.randHex = func(int) (string, error) { return "ab12", nil }
	return repo, images, clock
}

func analysis(docType string) *models.AnalysisResult {
	return &models.AnalysisResult{
		Success:      true,
		DocumentType: docType,
		Confidence:   0.93,
		Language:     models.Language{Code: "en", Name: "English", Confidence: 0.99},
		Data:         map[string]any{"total": "12.50"},
		RawText:      "some text",
	}
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	res := analysis("receipt")
	rec, err := repo.Save(ctx, "/captures/img1.jpg", res, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Receipt 2024-06-01 ab12", rec.Name)
	assert.Equal(t, "/images/"+rec.ID+".jpg", rec.ImageURI)
	assert.Equal(t, int64(2048), rec.Size)
	assert.Equal(t, models.DocumentKindImage, rec.Kind)
	assert.Equal(t, "#4CAF50", rec.Color)
	assert.False(t, rec.HasEdits)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ImageURI, got.ImageURI)
	assert.Equal(t, res, got.Analysis)
	assert.False(t, got.HasEdits)
}

func TestSave_PDFKindAndEditedTitle(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	edited := &models.EditedDocument{Title: "Lease agreement"}
	rec, err := repo.Save(ctx, "/captures/contract.PDF", analysis("contract"), edited)
	require.NoError(t, err)

	assert.Equal(t, models.DocumentKindPDF, rec.Kind)
	assert.Equal(t, "Lease agreement", rec.Name)
	assert.True(t, rec.HasEdits)
}

func TestGet_NotFound(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_SetsEditsAndBumpsUpdatedAt(t *testing.T) {
	repo, _, clock := newTestRepo(t)
	ctx := context.Background()

	rec, err := repo.Save(ctx, "/captures/img.jpg", analysis("invoice"), nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)
	edited := &models.EditedDocument{
		Title: "March invoice",
		Sections: []models.Section{
			{ID: "s1", Title: "Amounts", Fields: []models.Field{
				{ID: "f1", Label: "Total", Value: "99.00", Style: models.FieldStyle{Bold: true}},
			}},
		},
	}

	got, err := repo.Update(ctx, rec.ID, models.DocumentUpdate{EditedData: edited})
	require.NoError(t, err)
	assert.True(t, got.HasEdits)
	assert.Equal(t, edited, got.EditedData)
	assert.True(t, got.UpdatedAt.After(rec.CreatedAt))

	// persisted, not just in-memory
	reread, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, reread.HasEdits)
	assert.Equal(t, "Amounts", reread.EditedData.Sections[0].Title)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	name := "x"
	_, err := repo.Update(context.Background(), "missing", models.DocumentUpdate{Name: &name})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteMany_RemovesRecordsAndImages(t *testing.T) {
	repo, images, _ := newTestRepo(t)
	ctx := context.Background()

	r1, err := repo.Save(ctx, "/c/1.jpg", analysis("receipt"), nil)
	require.NoError(t, err)
	r2, err := repo.Save(ctx, "/c/2.jpg", analysis("invoice"), nil)
	require.NoError(t, err)
	r3, err := repo.Save(ctx, "/c/3.jpg", analysis("letter"), nil)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteMany(ctx, []string{r1.ID, r2.ID}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.Get(ctx, r1.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Get(ctx, r3.ID)
	assert.NoError(t, err)

	assert.ElementsMatch(t, []string{r1.ImageURI, r2.ImageURI}, images.removed)
}

func TestListMetadata_SortedByCreatedAtDesc(t *testing.T) {
	repo, _, clock := newTestRepo(t)
	ctx := context.Background()

	older, err := repo.Save(ctx, "/c/old.jpg", analysis("receipt"), nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)
	newer, err := repo.Save(ctx, "/c/new.jpg", analysis("invoice"), nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(5 * time.Minute)
	metas, err := repo.ListMetadata(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	assert.Equal(t, newer.ID, metas[0].ID)
	assert.Equal(t, older.ID, metas[1].ID)
	assert.Equal(t, "5 min ago", metas[0].Date)
	assert.Equal(t, "2 hours ago", metas[1].Date)
	assert.Equal(t, "2.0 KB", metas[0].Size)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	name := "Electricity Bill"
	rec, err := repo.Save(ctx, "/c/a.jpg", analysis("invoice"), nil)
	require.NoError(t, err)
	_, err = repo.Update(ctx, rec.ID, models.DocumentUpdate{Name: &name})
	require.NoError(t, err)

	_, err = repo.Save(ctx, "/c/b.jpg", analysis("receipt"), nil)
	require.NoError(t, err)

	hits, err := repo.Search(ctx, "electri")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Electricity Bill", hits[0].Name)

	all, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClearAll(t *testing.T) {
	repo, images, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, "/c/1.jpg", analysis("receipt"), nil)
	require.NoError(t, err)

	require.NoError(t, repo.ClearAll(ctx))
	assert.True(t, images.cleared)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSave_ImageStoreFailure(t *testing.T) {
	repo, images, _ := newTestRepo(t)
	images.failAdd = true

	_, err := repo.Save(context.Background(), "/c/1.jpg", analysis("receipt"), nil)
	assert.Error(t, err)

	// nothing persisted
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
