package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsanalyst/backend/internal/model"
	"github.com/bsanalyst/backend/internal/repo"
)

func seedChunk(t *testing.T, chunks *repo.ChunkRepo, docID, companyID int64, idx int, text string, ctime int64) *model.Chunk {
	t.Helper()
	chunk := &model.Chunk{
		DocumentID: docID,
		CompanyID:  companyID,
		ChunkIndex: idx,
		Text:       text,
		Ctime:      ctime,
	}
	require.NoError(t, chunks.Create(context.Background(), chunk))
	return chunk
}

func TestChunkRepoSearchScopedByCompany(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)

	seedChunk(t, chunks, 1, 1, 0, "Acme reported strong revenue growth in Q3", 100)
	seedChunk(t, chunks, 2, 2, 0, "Globex revenue collapsed due to weak demand", 100)

	texts, err := chunks.Search(context.Background(), 1, "revenue", 8)
	require.NoError(t, err)
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "Acme")
}

func TestChunkRepoSearchRanksByRelevance(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)

	seedChunk(t, chunks, 1, 1, 0, "general commentary on market conditions and outlook", 100)
	seedChunk(t, chunks, 1, 1, 1, "liabilities liabilities liabilities dominate the balance sheet", 101)
	seedChunk(t, chunks, 1, 1, 2, "a single mention of liabilities in passing text", 102)

	texts, err := chunks.Search(context.Background(), 1, "liabilities", 8)
	require.NoError(t, err)
	require.Len(t, texts, 2)
	require.Contains(t, texts[0], "dominate")
}

func TestChunkRepoSearchLimit(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)

	for i := 0; i < 10; i++ {
		seedChunk(t, chunks, 1, 1, i, "recurring assets discussion for the annual report", int64(100+i))
	}
	texts, err := chunks.Search(context.Background(), 1, "assets", 8)
	require.NoError(t, err)
	require.Len(t, texts, 8)
}

func TestChunkRepoSearchOperatorWordsAreTerms(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)

	seedChunk(t, chunks, 1, 1, 0, "assets grew while liabilities shrank year over year", 100)

	texts, err := chunks.Search(context.Background(), 1, "assets OR liabilities", 8)
	require.NoError(t, err)
	require.Len(t, texts, 1)

	texts, err = chunks.Search(context.Background(), 1, "compare assets AND liabilities", 8)
	require.NoError(t, err)
	require.Len(t, texts, 1)

	texts, err = chunks.Search(context.Background(), 1, "NOT NEAR anything", 8)
	require.NoError(t, err)
	require.Empty(t, texts)
}

func TestChunkRepoSearchEmptyQueryMatchesNothing(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)
	seedChunk(t, chunks, 1, 1, 0, "some indexed text", 100)

	texts, err := chunks.Search(context.Background(), 1, "?!...", 8)
	require.NoError(t, err)
	require.Empty(t, texts)
}

func TestChunkRepoLatestNewestFirst(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)

	seedChunk(t, chunks, 1, 1, 0, "oldest", 100)
	seedChunk(t, chunks, 1, 1, 1, "middle", 200)
	seedChunk(t, chunks, 1, 1, 2, "newest", 300)
	seedChunk(t, chunks, 2, 2, 0, "other company", 400)

	texts, err := chunks.Latest(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"newest", "middle"}, texts)
}

func TestChunkRepoCountByDocument(t *testing.T) {
	db := openTestDB(t)
	chunks := repo.NewChunkRepo(db)

	seedChunk(t, chunks, 1, 1, 0, "first", 100)
	seedChunk(t, chunks, 1, 1, 1, "second", 100)
	seedChunk(t, chunks, 2, 1, 0, "unrelated", 100)

	count, err := chunks.CountByDocument(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
