package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/middleware"
	"github.com/bsanalyst/backend/internal/model"
	"github.com/bsanalyst/backend/internal/pkg/errcode"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/pkg/response"
)

// currentUser rebuilds the caller identity from the verified JWT claims
// set by the auth middleware.
func currentUser(c *gin.Context) *model.User {
	user := &model.User{}
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok := v.(int64); ok {
			user.ID = id
		}
	}
	if v, ok := c.Get(middleware.ContextRoleKey); ok {
		if role, ok := v.(string); ok {
			user.Role = role
		}
	}
	return user
}

func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case appErr.IsNotFound(err):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrNoContent):
		response.Error(c, errcode.ErrNoContent, "no documents ingested for this company")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case appErr.IsConflict(err):
		response.Error(c, errcode.ErrConflict, "conflict")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
