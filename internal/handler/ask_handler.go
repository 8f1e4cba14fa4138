package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/pkg/errcode"
	"github.com/bsanalyst/backend/internal/pkg/response"
	"github.com/bsanalyst/backend/internal/service"
)

type AskHandler struct {
	answers   *service.AnswerService
	companies *service.CompanyService
}

func NewAskHandler(answers *service.AnswerService, companies *service.CompanyService) *AskHandler {
	return &AskHandler{answers: answers, companies: companies}
}

type askRequest struct {
	Question  string `json:"question"`
	CompanyID int64  `json:"company_id"`
}

func (h *AskHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" || req.CompanyID <= 0 {
		response.Error(c, errcode.ErrInvalid, "question and company_id are required")
		return
	}
	ok, err := h.companies.HasAccess(c.Request.Context(), currentUser(c), req.CompanyID)
	if err != nil {
		handleError(c, err)
		return
	}
	if !ok {
		response.Error(c, errcode.ErrForbidden, "not allowed for this company")
		return
	}
	answer, err := h.answers.Ask(c.Request.Context(), req.CompanyID, req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, answer)
}
