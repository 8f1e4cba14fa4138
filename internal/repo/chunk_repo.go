package repo

import (
	"context"
	"database/sql"
	"strings"
	"unicode"

	"github.com/didi/gendry/builder"

	"github.com/bsanalyst/backend/internal/model"
)

type ChunkRepo struct {
	db *sql.DB
}

func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Create inserts the chunk and mirrors its text into the FTS index.
func (r *ChunkRepo) Create(ctx context.Context, chunk *model.Chunk) error {
	data := map[string]interface{}{
		"document_id": chunk.DocumentID,
		"company_id":  chunk.CompanyID,
		"chunk_index": chunk.ChunkIndex,
		"text":        chunk.Text,
		"ctime":       chunk.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("document_chunks", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if chunk.ID, err = result.LastInsertId(); err != nil {
		return err
	}
	ftsData := map[string]interface{}{
		"text":        chunk.Text,
		"chunk_id":    chunk.ID,
		"document_id": chunk.DocumentID,
		"company_id":  chunk.CompanyID,
	}
	sqlStr, args, err = builder.BuildInsert("chunks_fts", []map[string]interface{}{ftsData})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Search runs a natural-language match over the company's chunks, best
// match first (bm25 rank). A question with no indexable terms matches
// nothing, which callers treat the same as an empty result set.
func (r *ChunkRepo) Search(ctx context.Context, companyID int64, query string, limit uint) ([]string, error) {
	cleaned := sanitizeMatchQuery(query)
	if cleaned == "" {
		return []string{}, nil
	}
	where := map[string]interface{}{
		"company_id":    companyID,
		"_custom_match": builder.Custom("chunks_fts MATCH ?", cleaned),
		"_orderby":      "rank",
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	sqlStr, args, err := builder.BuildSelect("chunks_fts", where, []string{"text"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	texts := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// Latest returns the newest chunks for a company, newest first. Used as
// the retrieval fallback when the match query returns nothing.
func (r *ChunkRepo) Latest(ctx context.Context, companyID int64, limit uint) ([]string, error) {
	where := map[string]interface{}{
		"company_id": companyID,
		"_orderby":   "ctime desc, id desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	sqlStr, args, err := builder.BuildSelect("document_chunks", where, []string{"text"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	texts := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

func (r *ChunkRepo) CountByDocument(ctx context.Context, documentID int64) (int, error) {
	where := map[string]interface{}{"document_id": documentID}
	sqlStr, args, err := builder.BuildSelect("document_chunks", where, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// sanitizeMatchQuery strips FTS operator characters so user questions
// cannot break or hijack the MATCH expression. Each term is quoted as an
// FTS5 string, otherwise a question containing words like OR or NEAR
// would parse as operators and the match would fail.
func sanitizeMatchQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	var sb strings.Builder
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	terms := strings.Fields(sb.String())
	for i, term := range terms {
		terms[i] = `"` + term + `"`
	}
	return strings.Join(terms, " OR ")
}
