package service

import (
	"context"
	"time"

	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/pkg/jwt"
	"github.com/bsanalyst/backend/internal/pkg/password"
	"github.com/bsanalyst/backend/internal/pkg/timeutil"
	"github.com/bsanalyst/backend/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, plainPassword, role string) (*model.User, error) {
	if username == "" || plainPassword == "" || !model.ValidRole(role) {
		return nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Ctime:        timeutil.NowUnix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// SeedAdmin creates the bootstrap admin/admin account if it does not
// exist yet. Returns the user and whether it was created by this call.
func (s *AuthService) SeedAdmin(ctx context.Context) (*model.User, bool, error) {
	existing, err := s.users.GetByUsername(ctx, "admin")
	if err == nil {
		return existing, false, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, false, err
	}
	user, err := s.CreateUser(ctx, "admin", "admin", model.RoleGroupAdmin)
	if err != nil {
		if appErr.IsConflict(err) {
			existing, getErr := s.users.GetByUsername(ctx, "admin")
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return user, true, nil
}
