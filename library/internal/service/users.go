package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
)

type TokenIssuer interface {
	Issue(userID, role string) (string, time.Time, error)
}

type Users struct {
	repo   repository.Users
	issuer TokenIssuer
	log    *zap.Logger
}

func NewUsers(repo repository.Users, issuer TokenIssuer, log *zap.Logger) *Users {
	return &Users{
		repo:   repo,
		issuer: issuer,
		log:    log.Named("users"),
	}
}

func (s *Users) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.repo.CreateUser(ctx, req.Email, hash, role)
	if err != nil {
		var uErr *repository.ErrUniqueViolation
		if errors.As(err, &uErr) {
			return model.User{}, errs.ErrEmailExists
		}
		return model.User{}, err
	}
	return user, nil
}

// Register is the self-service signup. It always creates a member.
func (s *Users) Register(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	req.Role = model.RoleMember
	return s.CreateUser(ctx, req)
}

func (s *Users) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.LoginResponse{}, errs.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}
	ok, err := verifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.log.Error("verifyPassword", zap.Stringer("user_id", user.ID), zap.Error(err))
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}
	if !ok {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}
	token, expiresAt, err := s.issuer.Issue(user.ID.String(), string(user.Role))
	if err != nil {
		return model.LoginResponse{}, err
	}
	return model.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	}, nil
}

// FindUserByID is the user directory lookup.
func (s *Users) FindUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *Users) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Users) UpdateUserRole(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.repo.UpdateUserRole(ctx, id, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}
