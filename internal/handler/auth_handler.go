package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/model"
	"github.com/bsanalyst/backend/internal/pkg/errcode"
	"github.com/bsanalyst/backend/internal/pkg/response"
	"github.com/bsanalyst/backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":   token,
		"role":    user.Role,
		"user_id": user.ID,
	})
}

// SeedAdmin bootstraps the default admin account. Kept unauthenticated
// for first-run setup, matching the seed endpoint of the original API.
func (h *AuthHandler) SeedAdmin(c *gin.Context) {
	user, created, err := h.auth.SeedAdmin(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	message := "admin already exists"
	if created {
		message = "admin created"
	}
	response.Success(c, gin.H{"message": message, "id": user.ID})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	if currentUser(c).Role != model.RoleGroupAdmin {
		response.Error(c, errcode.ErrForbidden, "only admin can create users")
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, err := h.auth.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	if currentUser(c).Role != model.RoleGroupAdmin {
		response.Error(c, errcode.ErrForbidden, "only admin can list users")
		return
	}
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	items := make([]gin.H, 0, len(users))
	for _, user := range users {
		items = append(items, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	}
	response.Success(c, gin.H{"items": items})
}
