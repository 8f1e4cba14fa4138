package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"

	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
)

type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) Create(ctx context.Context, name string) (*model.Company, error) {
	data := map[string]interface{}{
		"name": name,
	}
	sqlStr, args, err := builder.BuildInsert("companies", []map[string]interface{}{data})
	if err != nil {
		return nil, err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, appErr.ErrConflict
		}
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Company{ID: id, Name: name}, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	where := map[string]interface{}{"id": id}
	return r.selectOne(ctx, where)
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*model.Company, error) {
	where := map[string]interface{}{"name": name}
	return r.selectOne(ctx, where)
}

func (r *CompanyRepo) selectOne(ctx context.Context, where map[string]interface{}) (*model.Company, error) {
	sqlStr, args, err := builder.BuildSelect("companies", where, []string{"id", "name"})
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
	var company model.Company
	if err := rows.Scan(&company.ID, &company.Name); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]model.Company, error) {
	where := map[string]interface{}{"_orderby": "id"}
	sqlStr, args, err := builder.BuildSelect("companies", where, []string{"id", "name"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	companies := make([]model.Company, 0)
	for rows.Next() {
		var company model.Company
		if err := rows.Scan(&company.ID, &company.Name); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *CompanyRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Company, error) {
	if len(ids) == 0 {
		return []model.Company{}, nil
	}
	where := map[string]interface{}{"id in": ids, "_orderby": "id"}
	sqlStr, args, err := builder.BuildSelect("companies", where, []string{"id", "name"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	companies := make([]model.Company, 0, len(ids))
	for rows.Next() {
		var company model.Company
		if err := rows.Scan(&company.ID, &company.Name); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint")
}
