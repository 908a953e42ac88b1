package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
)

type memUsers struct {
	byEmail map[string]model.User
}

func (r *memUsers) CreateUser(_ context.Context, email, hash string, role model.Role) (model.User, error) {
	if _, ok := r.byEmail[email]; ok {
		return model.User{}, &repository.ErrUniqueViolation{Constraint: "users_email_key"}
	}
	u := model.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: role}
	r.byEmail[email] = u
	return u, nil
}

func (r *memUsers) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (r *memUsers) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) ListUsers(context.Context) ([]model.User, error) {
	res := make([]model.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		res = append(res, u)
	}
	return res, nil
}

func (r *memUsers) UpdateUserRole(_ context.Context, id uuid.UUID, role model.Role) (model.User, error) {
	for email, u := range r.byEmail {
		if u.ID == id {
			u.Role = role
			r.byEmail[email] = u
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID, role string) (string, time.Time, error) {
	return userID + "." + role, time.Now().Add(time.Hour), nil
}

func TestUsers_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewUsers(&memUsers{byEmail: map[string]model.User{}}, stubIssuer{}, zap.NewNop())

	user, err := s.Register(ctx, model.CreateUserRequest{Email: "reader@example.com", Password: "secret1", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, model.RoleMember, user.Role)
	require.NotEqual(t, "secret1", user.PasswordHash)

	_, err = s.Register(ctx, model.CreateUserRequest{Email: "reader@example.com", Password: "secret2"})
	require.ErrorIs(t, err, errs.ErrEmailExists)

	resp, err := s.Login(ctx, model.LoginRequest{Email: "reader@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, user.ID.String()+".member", resp.AccessToken)
	require.InDelta(t, time.Hour.Seconds(), float64(resp.ExpiresIn), 5)

	_, err = s.Login(ctx, model.LoginRequest{Email: "reader@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = s.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestUsers_Directory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewUsers(&memUsers{byEmail: map[string]model.User{}}, stubIssuer{}, zap.NewNop())

	created, err := s.CreateUser(ctx, model.CreateUserRequest{Email: "staff@example.com", Password: "secret1", Role: model.RoleLibrarian})
	require.NoError(t, err)
	require.Equal(t, model.RoleLibrarian, created.Role)

	found, err := s.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, found.Email)

	_, err = s.FindUserByID(ctx, uuid.New())
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	updated, err := s.UpdateUserRole(ctx, created.ID, model.UpdateUserRequest{Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, updated.Role)

	_, err = s.UpdateUserRole(ctx, uuid.New(), model.UpdateUserRequest{Role: model.RoleAdmin})
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := hashPassword("correct horse")
	require.NoError(t, err)

	ok, err := verifyPassword("correct horse", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = verifyPassword("battery staple", hash)
	require.NoError(t, err)
	require.False(t, ok)

	other, err := hashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, hash, other)

	_, err = verifyPassword("correct horse", "plain")
	require.ErrorIs(t, err, errMalformedHash)
}
