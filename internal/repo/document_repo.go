package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
)

var documentColumns = []string{"id", "company_id", "filename", "content_type", "size_kb", "ctime"}

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	data := map[string]interface{}{
		"company_id":   doc.CompanyID,
		"filename":     doc.Filename,
		"content_type": doc.ContentType,
		"size_kb":      doc.SizeKB,
		"ctime":        doc.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	doc.ID, err = result.LastInsertId()
	return err
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var doc model.Document
	if err := rows.Scan(&doc.ID, &doc.CompanyID, &doc.Filename, &doc.ContentType, &doc.SizeKB, &doc.Ctime); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepo) ListByCompany(ctx context.Context, companyID int64) ([]model.Document, error) {
	where := map[string]interface{}{
		"company_id": companyID,
		"_orderby":   "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	docs := make([]model.Document, 0)
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.CompanyID, &doc.Filename, &doc.ContentType, &doc.SizeKB, &doc.Ctime); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes the document together with its chunks and their search
// index rows.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	for _, table := range []string{"chunks_fts", "document_chunks"} {
		sqlStr, args, err := builder.BuildDelete(table, map[string]interface{}{"document_id": id})
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	sqlStr, args, err := builder.BuildDelete("documents", map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
