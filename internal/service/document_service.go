package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bsanalyst/backend/internal/model"
	"github.com/bsanalyst/backend/internal/repo"
)

type DocumentService struct {
	documents *repo.DocumentRepo
}

func NewDocumentService(documents *repo.DocumentRepo) *DocumentService {
	return &DocumentService{documents: documents}
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *DocumentService) ListByCompany(ctx context.Context, companyID int64) ([]model.Document, error) {
	return s.documents.ListByCompany(ctx, companyID)
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("document deleted", zap.Int64("document_id", id))
	return nil
}
