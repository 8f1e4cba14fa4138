package service

import (
	"context"
	"math"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bsanalyst/backend/internal/model"
	"github.com/bsanalyst/backend/internal/pdf"
	"github.com/bsanalyst/backend/internal/pkg/timeutil"
	"github.com/bsanalyst/backend/internal/repo"
)

type IngestService struct {
	documents *repo.DocumentRepo
	chunks    *repo.ChunkRepo
	extractor pdf.Extractor
	maxChars  int
}

func NewIngestService(documents *repo.DocumentRepo, chunks *repo.ChunkRepo, extractor pdf.Extractor, maxChars int) *IngestService {
	if maxChars <= 0 {
		maxChars = DefaultChunkMaxChars
	}
	return &IngestService{
		documents: documents,
		chunks:    chunks,
		extractor: extractor,
		maxChars:  maxChars,
	}
}

type IngestResult struct {
	DocumentID int64  `json:"document_id"`
	CompanyID  int64  `json:"company_id"`
	ChunkCount int    `json:"chunk_count"`
	Degraded   bool   `json:"degraded,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Ingest persists the document record first, so a document whose text
// cannot be extracted still exists and is listable. Extraction failure
// is reported as a degraded outcome, never as a request failure; the
// chunk-less document is an accepted partial write.
func (s *IngestService) Ingest(ctx context.Context, companyID int64, filename, contentType string, raw []byte) (*IngestResult, error) {
	logger := logutil.GetLogger(ctx).With(
		zap.Int64("company_id", companyID),
		zap.String("filename", filename),
	)
	doc := &model.Document{
		CompanyID:   companyID,
		Filename:    filename,
		ContentType: contentType,
		SizeKB:      int64(math.Round(float64(len(raw)) / 1024)),
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(raw)
	if err != nil {
		logger.Warn("text extraction failed, keeping chunk-less document",
			zap.Int64("document_id", doc.ID), zap.Error(err))
		return &IngestResult{
			DocumentID: doc.ID,
			CompanyID:  companyID,
			Degraded:   true,
			Diagnostic: err.Error(),
		}, nil
	}

	parts := ChunkText(text, s.maxChars)
	now := timeutil.NowUnix()
	for idx, part := range parts {
		chunk := &model.Chunk{
			DocumentID: doc.ID,
			CompanyID:  companyID,
			ChunkIndex: idx,
			Text:       part,
			Ctime:      now,
		}
		if err := s.chunks.Create(ctx, chunk); err != nil {
			return nil, err
		}
	}
	logger.Info("document ingested",
		zap.Int64("document_id", doc.ID),
		zap.Int64("size_kb", doc.SizeKB),
		zap.Int("chunk_count", len(parts)),
	)
	return &IngestResult{
		DocumentID: doc.ID,
		CompanyID:  companyID,
		ChunkCount: len(parts),
	}, nil
}
