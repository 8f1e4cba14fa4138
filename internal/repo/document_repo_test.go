package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/repo"
)

func TestDocumentRepoCreateAndList(t *testing.T) {
	db := openTestDB(t)
	docs := repo.NewDocumentRepo(db)

	doc := &model.Document{
		CompanyID:   1,
		Filename:    "q3-report.pdf",
		ContentType: "application/pdf",
		SizeKB:      42,
		Ctime:       100,
	}
	require.NoError(t, docs.Create(context.Background(), doc))
	require.NotZero(t, doc.ID)

	newer := &model.Document{CompanyID: 1, Filename: "q4-report.pdf", ContentType: "application/pdf", SizeKB: 10, Ctime: 200}
	require.NoError(t, docs.Create(context.Background(), newer))

	listed, err := docs.ListByCompany(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "q4-report.pdf", listed[0].Filename)

	other, err := docs.ListByCompany(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestDocumentRepoDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	docs := repo.NewDocumentRepo(db)
	chunks := repo.NewChunkRepo(db)

	doc := &model.Document{CompanyID: 1, Filename: "a.pdf", ContentType: "application/pdf", SizeKB: 1, Ctime: 100}
	require.NoError(t, docs.Create(context.Background(), doc))
	seedChunk(t, chunks, doc.ID, 1, 0, "cascade target text", 100)
	seedChunk(t, chunks, doc.ID, 1, 1, "another cascade target", 100)

	require.NoError(t, docs.Delete(context.Background(), doc.ID))

	_, err := docs.GetByID(context.Background(), doc.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	count, err := chunks.CountByDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// search index rows must be gone as well
	texts, err := chunks.Search(context.Background(), 1, "cascade", 8)
	require.NoError(t, err)
	require.Empty(t, texts)
}

func TestDocumentRepoDeleteMissing(t *testing.T) {
	db := openTestDB(t)
	docs := repo.NewDocumentRepo(db)
	require.ErrorIs(t, docs.Delete(context.Background(), 12345), appErr.ErrNotFound)
}
