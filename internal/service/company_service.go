package service

import (
	"context"
	"errors"

	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/repo"
)

type CompanyService struct {
	companies *repo.CompanyRepo
	access    *repo.AccessRepo
}

func NewCompanyService(companies *repo.CompanyRepo, access *repo.AccessRepo) *CompanyService {
	return &CompanyService{companies: companies, access: access}
}

// Create enforces name uniqueness; creating an already-existing company
// returns the existing record with existed=true.
func (s *CompanyService) Create(ctx context.Context, name string) (*model.Company, bool, error) {
	if name == "" {
		return nil, false, appErr.ErrInvalid
	}
	company, err := s.companies.Create(ctx, name)
	if err == nil {
		return company, false, nil
	}
	if errors.Is(err, appErr.ErrConflict) {
		existing, getErr := s.companies.GetByName(ctx, name)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, true, nil
	}
	return nil, false, err
}

// ListFor returns every company for a group_admin and only granted
// companies for anyone else.
func (s *CompanyService) ListFor(ctx context.Context, user *model.User) ([]model.Company, error) {
	if user.Role == model.RoleGroupAdmin {
		return s.companies.List(ctx)
	}
	ids, err := s.access.ListCompanyIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.companies.ListByIDs(ctx, ids)
}

func (s *CompanyService) Grant(ctx context.Context, userID, companyID int64) error {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return err
	}
	return s.access.Grant(ctx, userID, companyID)
}

// HasAccess implements the grant model: group_admin sees every company,
// everyone else needs an explicit grant row.
func (s *CompanyService) HasAccess(ctx context.Context, user *model.User, companyID int64) (bool, error) {
	if user.Role == model.RoleGroupAdmin {
		return true, nil
	}
	return s.access.Has(ctx, user.ID, companyID)
}
