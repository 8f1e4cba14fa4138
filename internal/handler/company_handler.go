package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/model"
	"github.com/bsanalyst/backend/internal/pkg/errcode"
	"github.com/bsanalyst/backend/internal/pkg/response"
	"github.com/bsanalyst/backend/internal/service"
)

type CompanyHandler struct {
	companies *service.CompanyService
}

func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type createCompanyRequest struct {
	Name string `json:"name"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	if currentUser(c).Role != model.RoleGroupAdmin {
		response.Error(c, errcode.ErrForbidden, "only admin can create companies")
		return
	}
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	company, existed, err := h.companies.Create(c.Request.Context(), req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	message := "created"
	if existed {
		message = "already exists"
	}
	response.Success(c, gin.H{
		"id":      company.ID,
		"name":    company.Name,
		"message": message,
	})
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.ListFor(c.Request.Context(), currentUser(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": companies})
}

type grantAccessRequest struct {
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
}

func (h *CompanyHandler) GrantAccess(c *gin.Context) {
	if currentUser(c).Role != model.RoleGroupAdmin {
		response.Error(c, errcode.ErrForbidden, "only admin can grant access")
		return
	}
	var req grantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.CompanyID == 0 {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.companies.Grant(c.Request.Context(), req.UserID, req.CompanyID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "granted"})
}
