package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/pkg/errcode"
	"github.com/bsanalyst/backend/internal/pkg/response"
	"github.com/bsanalyst/backend/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
	companies *service.CompanyService
	ingest    *service.IngestService
}

func NewDocumentHandler(documents *service.DocumentService, companies *service.CompanyService, ingest *service.IngestService) *DocumentHandler {
	return &DocumentHandler{documents: documents, companies: companies, ingest: ingest}
}

// checkAccess enforces the company grant before any document work runs.
func (h *DocumentHandler) checkAccess(c *gin.Context, companyID int64) bool {
	ok, err := h.companies.HasAccess(c.Request.Context(), currentUser(c), companyID)
	if err != nil {
		handleError(c, err)
		return false
	}
	if !ok {
		response.Error(c, errcode.ErrForbidden, "not allowed for this company")
		return false
	}
	return true
}

func (h *DocumentHandler) List(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Query("company_id"), 10, 64)
	if err != nil || companyID <= 0 {
		response.Error(c, errcode.ErrInvalid, "company_id is required")
		return
	}
	if !h.checkAccess(c, companyID) {
		return
	}
	docs, err := h.documents.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": docs})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || docID <= 0 {
		response.Error(c, errcode.ErrInvalid, "invalid document id")
		return
	}
	doc, err := h.documents.Get(c.Request.Context(), docID)
	if err != nil {
		handleError(c, err)
		return
	}
	if !h.checkAccess(c, doc.CompanyID) {
		return
	}
	if err := h.documents.Delete(c.Request.Context(), docID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "deleted"})
}

func (h *DocumentHandler) Ingest(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.PostForm("company_id"), 10, 64)
	if err != nil || companyID <= 0 {
		response.Error(c, errcode.ErrInvalid, "company_id is required")
		return
	}
	if !h.checkAccess(c, companyID) {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	raw, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	contentType := file.Header.Get("Content-Type")
	result, err := h.ingest.Ingest(c.Request.Context(), companyID, file.Filename, contentType, raw)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
