package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
)

type AccessRepo struct {
	db *sql.DB
}

func NewAccessRepo(db *sql.DB) *AccessRepo {
	return &AccessRepo{db: db}
}

func (r *AccessRepo) Grant(ctx context.Context, userID, companyID int64) error {
	data := map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
	}
	sqlStr, args, err := builder.BuildInsert("user_company_access", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil && isUniqueViolation(err) {
		// re-granting is a no-op
		return nil
	}
	return err
}

func (r *AccessRepo) Has(ctx context.Context, userID, companyID int64) (bool, error) {
	where := map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
	}
	sqlStr, args, err := builder.BuildSelect("user_company_access", where, []string{"id"})
	if err != nil {
		return false, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	return rows.Next(), rows.Err()
}

func (r *AccessRepo) ListCompanyIDs(ctx context.Context, userID int64) ([]int64, error) {
	where := map[string]interface{}{"user_id": userID}
	sqlStr, args, err := builder.BuildSelect("user_company_access", where, []string{"company_id"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
