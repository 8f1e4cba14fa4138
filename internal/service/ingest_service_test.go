package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsanalyst/backend/internal/repo"
	"github.com/bsanalyst/backend/internal/service"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(raw []byte) (string, error) {
	return s.text, s.err
}

func TestIngestChunksAndPersists(t *testing.T) {
	db := openTestDB(t)
	docs := repo.NewDocumentRepo(db)
	chunks := repo.NewChunkRepo(db)

	text := strings.Repeat("balance sheet assets and liabilities ", 60) // ~2220 chars
	ingest := service.NewIngestService(docs, chunks, stubExtractor{text: text}, 900)

	raw := make([]byte, 2048)
	result, err := ingest.Ingest(context.Background(), 1, "report.pdf", "application/pdf", raw)
	require.NoError(t, err)
	require.NotZero(t, result.DocumentID)
	require.Equal(t, int64(1), result.CompanyID)
	require.Equal(t, 3, result.ChunkCount)
	require.False(t, result.Degraded)

	doc, err := docs.GetByID(context.Background(), result.DocumentID)
	require.NoError(t, err)
	require.Equal(t, "report.pdf", doc.Filename)
	require.Equal(t, int64(2), doc.SizeKB)

	count, err := chunks.CountByDocument(context.Background(), result.DocumentID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	// chunks must be findable through the search index
	found, err := chunks.Search(context.Background(), 1, "liabilities", 8)
	require.NoError(t, err)
	require.NotEmpty(t, found)
}

func TestIngestExtractionFailureKeepsDocument(t *testing.T) {
	db := openTestDB(t)
	docs := repo.NewDocumentRepo(db)
	chunks := repo.NewChunkRepo(db)

	ingest := service.NewIngestService(docs, chunks, stubExtractor{err: errors.New("corrupt xref table")}, 900)

	result, err := ingest.Ingest(context.Background(), 1, "broken.pdf", "application/pdf", []byte("not a pdf"))
	require.NoError(t, err)
	require.True(t, result.Degraded)
	require.Contains(t, result.Diagnostic, "corrupt xref table")
	require.Zero(t, result.ChunkCount)

	// the document record survives without chunks
	_, err = docs.GetByID(context.Background(), result.DocumentID)
	require.NoError(t, err)
	count, err := chunks.CountByDocument(context.Background(), result.DocumentID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestIngestEmptyTextYieldsZeroChunks(t *testing.T) {
	db := openTestDB(t)
	docs := repo.NewDocumentRepo(db)
	chunks := repo.NewChunkRepo(db)

	ingest := service.NewIngestService(docs, chunks, stubExtractor{text: "\n\n\n"}, 900)

	result, err := ingest.Ingest(context.Background(), 1, "empty.pdf", "application/pdf", []byte{1, 2, 3})
	require.NoError(t, err)
	require.False(t, result.Degraded)
	require.Zero(t, result.ChunkCount)

	_, err = docs.GetByID(context.Background(), result.DocumentID)
	require.NoError(t, err)
}
